package systems

import (
	"math"
	"math/rand"
	"ursa-server/internal/config"
	"ursa-server/internal/core/types/enums"
	"ursa-server/internal/domain"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// stunDrag - затухание скорости за тик оглушения
const stunDrag = 0.9

// PlayerLocator возвращает текущую позицию игрока
type PlayerLocator func() domain.Vec2

// Senses - то, что контроллер читает у восприятия
type Senses interface {
	IsAlerted() bool
	DistanceToPlayer() float64
}

// Body - физическое тело агента (коллизии и интеграция снаружи)
type Body interface {
	Position() domain.Vec2
	Velocity() domain.Vec2
	Facing() float64
	IsStunned() bool

	SetVelocity(v domain.Vec2)
	SetFacing(angle float64)
	ApplyImpulse(j domain.Vec2)
	Teleport(pos domain.Vec2, facing float64)
}

// ControllerSpec - всё, что нужно для создания контроллера
type ControllerSpec struct {
	ID        string
	Spawn     domain.Vec2
	Facing    float64
	Waypoints []domain.Waypoint
	Profile   config.Profile

	Player   PlayerLocator
	Senses   Senses
	Body     Body
	Steering Steering // nil - DirectSteering
	Rng      *rand.Rand
}

// Controller - конечный автомат поведения одного врага.
// Однопоточный: Tick вызывается из цикла инстанса.
type Controller struct {
	id      string
	spawn   domain.Vec2
	facing0 float64
	profile config.Profile

	player   PlayerLocator
	senses   Senses
	body     Body
	steering Steering
	rng      *rand.Rand

	rec    Record
	memory *SightingMemory
	patrol *PatrolSequencer

	// Осмотр без скрипта
	lookBase   float64
	lookTarget float64

	log *logrus.Entry
}

func NewController(spec ControllerSpec) *Controller {
	steering := spec.Steering
	if steering == nil {
		steering = DirectSteering{}
	}
	rng := spec.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	p := spec.Profile

	c := &Controller{
		id:       spec.ID,
		spawn:    spec.Spawn,
		facing0:  spec.Facing,
		profile:  p,
		player:   spec.Player,
		senses:   spec.Senses,
		body:     spec.Body,
		steering: steering,
		rng:      rng,
		memory:   NewSightingMemory(p.MemoryCapacity, p.DetectionDelay, p.AdaptiveWindow, p.MinPatrolChange),
		patrol:   NewPatrolSequencer(spec.Waypoints, p.RotationSpeedRad()),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ai",
			"agent_id":  spec.ID,
		}),
	}
	c.rec = Record{State: enums.StateSpawn}
	return c
}

func (c *Controller) ID() string { return c.id }

// Record возвращает копию счетчиков (для снапшотов и debug)
func (c *Controller) Record() Record { return c.rec }

func (c *Controller) State() enums.BehaviorState { return c.rec.State }

func (c *Controller) Memory() *SightingMemory { return c.memory }

func (c *Controller) Patrol() *PatrolSequencer { return c.patrol }

func (c *Controller) Profile() config.Profile { return c.profile }

// Adaptive - подсказка восприятию (расширенная дальность)
func (c *Controller) Adaptive() bool { return c.memory.Adaptive() }

// Tick - один шаг: память -> переходы -> действие нового состояния.
// Команда уже применена к телу и возвращается для снапшотов.
func (c *Controller) Tick() domain.Command {
	playerPos := c.player()
	alerted := c.senses.IsAlerted()

	// 1. Память о наблюдениях
	spotted := c.memory.RecordIfSpotted(alerted, playerPos)

	// 2. Переход
	signals := Signals{
		Alerted:        alerted,
		Spotted:        spotted,
		Stunned:        c.body.IsStunned(),
		Rotating:       c.patrol.Rotating(),
		Distance:       c.senses.DistanceToPlayer(),
		SinceDetection: c.memory.SinceDetection(),
	}
	prev := c.rec.State
	c.rec = Transition(c.rec, signals, c.profile)
	c.rec.Adaptive = c.memory.Adaptive()

	if c.rec.State != prev {
		c.onEnter(prev)
	}

	// 3. Действие
	cmd := c.act(playerPos)
	c.body.SetVelocity(cmd.Velocity)
	c.body.SetFacing(cmd.Facing)
	if !cmd.Impulse.IsZero() {
		c.body.ApplyImpulse(cmd.Impulse)
	}
	return cmd
}

// onEnter - побочные эффекты входа в состояние
func (c *Controller) onEnter(prev enums.BehaviorState) {
	c.log.WithFields(logrus.Fields{
		"from": prev,
		"to":   c.rec.State,
		"tick": c.rec.Tick,
	}).Debug("State transition")

	switch c.rec.State {
	case enums.StateLooking:
		c.lookBase = c.body.Facing()
		c.lookTarget = c.lookBase
	case enums.StateSpawn:
		// Выход из оглушения: история наблюдений сохраняется, серия - нет
		c.memory.ResetStreak()
		c.steering.Reset()
	case enums.StateWon:
		c.log.WithField("tick", c.rec.Tick).Info("Player caught")
	}
}

func (c *Controller) act(playerPos domain.Vec2) domain.Command {
	pos := c.body.Position()
	facing := c.body.Facing()
	cmd := domain.Command{State: c.rec.State, Facing: facing}

	switch c.rec.State {
	case enums.StateSpawn, enums.StateConfused:
		// стоим, взгляд не меняется

	case enums.StateWander:
		cmd.Velocity, cmd.Facing = c.wander(pos, facing)

	case enums.StateLooking:
		if c.patrol.Rotating() {
			cmd.Facing = c.patrol.StepRotation(facing)
		} else {
			cmd.Facing = c.lookAround(facing)
		}

	case enums.StateChase:
		latest, ok := c.memory.Latest()
		if !ok {
			break
		}
		cmd.Velocity = c.steering.Steer(pos, latest, c.profile.ChaseSpeed)
		cmd.Facing = c.turnTo(facing, cmd.Velocity)

	case enums.StateAttack:
		cmd.Velocity = c.steering.Steer(pos, playerPos, c.profile.AttackSpeed)
		cmd.Facing = c.turnTo(facing, playerPos.Sub(pos))

	case enums.StateWon:
		if d := playerPos.Sub(pos); !d.IsZero() {
			cmd.Facing = d.Angle()
		}

	case enums.StateStunned:
		cmd.Facing = domain.NormalizeAngle(facing + c.profile.StunSpinRateRad())
		cmd.Velocity = c.body.Velocity().Scale(stunDrag)
		if every := c.profile.StunImpulseEvery; every > 0 && c.rec.StunTicks%every == 0 {
			cmd.Impulse = domain.FromAngle(c.rng.Float64() * 2 * math.Pi).Scale(c.profile.StunImpulse)
		}
	}

	return cmd
}

func (c *Controller) wander(pos domain.Vec2, facing float64) (domain.Vec2, float64) {
	target, ok := c.patrol.CurrentTarget()
	if !ok {
		return domain.Vec2{}, facing
	}
	if !c.patrol.ConsumeMoveDelay() {
		return domain.Vec2{}, facing
	}

	if pos.DistanceTo(target.Pos) <= c.profile.ArrivalTolerance {
		scripted := c.patrol.Advance()
		if !scripted {
			next, _ := c.patrol.CurrentTarget()
			if d := next.Pos.Sub(pos); !d.IsZero() {
				facing = d.Angle()
			}
		}
		return domain.Vec2{}, facing
	}

	v := c.steering.Steer(pos, target.Pos, c.profile.WanderSpeed)
	return v, c.turnTo(facing, v)
}

// lookAround - случайный осмотр в пределах +-LookAroundRange от исходного взгляда
func (c *Controller) lookAround(facing float64) float64 {
	next, reached := domain.RotateToward(facing, c.lookTarget, c.profile.LookAroundSpeedRad())
	if reached {
		spread := (c.rng.Float64()*2 - 1) * c.profile.LookAroundRangeRad()
		c.lookTarget = domain.NormalizeAngle(c.lookBase + spread)
	}
	return next
}

// turnTo плавно поворачивает взгляд по направлению dir
func (c *Controller) turnTo(facing float64, dir domain.Vec2) float64 {
	if dir.IsZero() {
		return facing
	}
	next, _ := domain.RotateToward(facing, dir.Angle(), c.profile.RotationSpeedRad())
	return next
}

// Reset - перезапуск уровня: SPAWN, нулевые счетчики, исходный порядок точек, точка спавна.
// Повторный вызов ничего не меняет.
func (c *Controller) Reset() {
	c.rec = Record{State: enums.StateSpawn}
	c.memory.Reset()
	c.patrol.Reset()
	c.steering.Reset()
	c.lookBase = c.facing0
	c.lookTarget = c.facing0
	c.body.Teleport(c.spawn, c.facing0)
}
