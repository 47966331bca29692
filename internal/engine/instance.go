package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"ursa-server/internal/config"
	"ursa-server/internal/core/types/enums"
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
	"ursa-server/internal/network"
	"ursa-server/internal/physics"
	"ursa-server/internal/systems"
	"ursa-server/pkg/api"
	"ursa-server/pkg/level"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrUnknownAgent - команда адресована врагу, которого нет на уровне
var ErrUnknownAgent = errors.New("unknown agent")

// Instance представляет собой один изолированный запущенный уровень.
// Вся симуляция идет в горутине Run, снаружи только команды и снимки.
type Instance struct {
	Name string
	File *level.File

	Grid   *systems.DetectionGrid
	World  *physics.World
	Player *physics.Body
	Agents []*Agent

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand

	// Hub для рассылки снимков. nil в безголовой симуляции.
	Hub *network.Broadcaster

	CurrentTick int // Локальное время этого уровня
	Caught      bool

	Logs []api.LogEntry // Логи с прошлого снимка

	Seed   int64                 // Сид, с которого начался уровень
	Replay *domain.ReplaySession // Лента внешних воздействий

	input       domain.Vec2 // Направление игрока
	playerSpawn domain.Vec2
	logSeq      int

	handlers map[domain.ActionType]handlers.HandlerFunc
	mu       sync.RWMutex
	log      *logrus.Entry
}

// NewInstance собирает уровень. Одинаковые файл, профили и сид дают одинаковую симуляцию.
func NewInstance(file *level.File, profiles config.Profiles, seed int64) (*Instance, error) {
	i := &Instance{
		Name:        file.Name,
		File:        file,
		CommandChan: make(chan domain.InternalCommand, 100),
		Logs:        []api.LogEntry{},
		Seed:        seed,
		Replay: &domain.ReplaySession{
			LevelName: file.Name,
			Seed:      seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		handlers: defaultHandlers(),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "instance",
			"level":     file.Name,
		}),
	}

	if err := i.buildWorld(file, profiles); err != nil {
		return nil, err
	}
	return i, nil
}

// Run запускает цикл ЭТОГО инстанса с фиксированной частотой тиков.
func (i *Instance) Run(ctx context.Context, interval time.Duration) {
	i.log.WithFields(logrus.Fields{
		"agents":   len(i.Agents),
		"interval": interval,
	}).Info("Instance loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			i.log.WithField("tick", i.CurrentTick).Info("Instance loop stopped")
			return

		// Команда применяется до следующего тика
		case cmd := <-i.CommandChan:
			i.ApplyCommand(cmd)

		case <-ticker.C:
			i.mu.Lock()
			i.step()
			i.publishLocked()
			i.mu.Unlock()
		}
	}
}

// Step продвигает уровень на один тик (безголовые прогоны и тесты)
func (i *Instance) Step() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.step()
}

// step: восприятие -> контроллеры -> физика
func (i *Instance) step() {
	// 1. Игрок
	if i.Caught {
		i.input = domain.Vec2{}
	}
	i.Player.SetVelocity(i.input.Scale(domain.PlayerSpeed))

	playerPos := i.Player.Position()
	playerMoving := !i.input.IsZero()

	// 2. Враги
	for _, a := range i.Agents {
		a.Perception.Refresh(systems.Observation{
			Self:         a.Body.Position(),
			Facing:       a.Body.Facing(),
			Player:       playerPos,
			PlayerMoving: playerMoving,
			Adaptive:     a.Ctrl.Adaptive(),
		})

		prev := a.Ctrl.State()
		a.Ctrl.Tick()
		if next := a.Ctrl.State(); next != prev {
			i.onStateChanged(a, prev, next)
		}
	}

	// 3. Физика
	i.World.Step()
	i.CurrentTick++
}

// onStateChanged пишет заметные переходы в лог уровня
func (i *Instance) onStateChanged(a *Agent, prev, next enums.BehaviorState) {
	id := a.Ctrl.ID()
	switch next {
	case enums.StateConfused:
		i.logEvent(domain.EventStateChanged, fmt.Sprintf("%s что-то заметил", id), domain.LogTypeAlert)
	case enums.StateChase:
		if prev != enums.StateAttack {
			i.logEvent(domain.EventStateChanged, fmt.Sprintf("%s преследует игрока", id), domain.LogTypeAlert)
		}
	case enums.StateLooking:
		if prev == enums.StateChase || prev == enums.StateConfused {
			i.logEvent(domain.EventStateChanged, fmt.Sprintf("%s потерял игрока", id), domain.LogTypeInfo)
		}
	case enums.StateWon:
		if !i.Caught {
			i.Caught = true
			i.logEvent(domain.EventPlayerCaught, fmt.Sprintf("%s поймал игрока", id), domain.LogTypeCaught)
		}
	}
}

// ApplyCommand выполняет команду в контексте уровня
func (i *Instance) ApplyCommand(cmd domain.InternalCommand) {
	i.mu.Lock()
	defer i.mu.Unlock()

	handler, ok := i.handlers[cmd.Action]
	if !ok {
		return
	}

	ctx := handlers.Context{
		Level: i,
		Token: cmd.Token,
		Tick:  i.CurrentTick,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"token":  cmd.Token,
		}).WithError(err).Warn("Command rejected")
		return
	}

	// В реплей попадает только то, что прошло валидацию
	if cmd.Action.IsRecorded() {
		i.recordAction(cmd, i.CurrentTick)
	}

	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
	}

	if cmd.Action == domain.ActionInit && i.Hub != nil {
		i.Hub.SendTo(cmd.Token, i.buildSnapshot(api.MsgTypeInit))
	}
}

func (i *Instance) recordAction(cmd domain.InternalCommand, tick int) {
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Tick:    tick,
		Action:  cmd.Action,
		Payload: cmd.Payload,
	})
}

// --- handlers.LevelControl ---

// SetPlayerInput вызывается под блокировкой из ApplyCommand
func (i *Instance) SetPlayerInput(dir domain.Vec2) bool {
	if i.Caught {
		return false
	}
	i.input = dir
	return true
}

// Retry возвращает уровень в исходное состояние. Тик и реплей продолжаются.
func (i *Instance) Retry() {
	i.Caught = false
	i.input = domain.Vec2{}
	i.Player.Teleport(i.playerSpawn, 0)

	for _, a := range i.Agents {
		a.rng.Seed(a.seed)
		a.Ctrl.Reset()
	}

	i.logEvent(domain.EventLevelRetry, "Уровень перезапущен", domain.LogTypeInfo)
}

func (i *Instance) StunAgent(id string, ticks int) error {
	a := i.agent(id)
	if a == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	a.Body.Stun(ticks)
	i.log.WithFields(logrus.Fields{
		"event":    domain.EventAgentStunned.String(),
		"agent_id": id,
		"ticks":    ticks,
	}).Debug("Agent stunned")
	return nil
}

func (i *Instance) agent(id string) *Agent {
	for _, a := range i.Agents {
		if a.Ctrl.ID() == id {
			return a
		}
	}
	return nil
}

// --- Снимки ---

// Snapshot возвращает снимок без очистки логов (дебаг, тесты)
func (i *Instance) Snapshot() api.Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.buildSnapshot(api.MsgTypeUpdate)
}

// publishLocked рассылает снимок зрителям уровня и очищает логи
func (i *Instance) publishLocked() {
	if i.Hub == nil {
		return
	}
	if i.Hub.Watchers(i.Name) > 0 {
		i.Hub.Publish(i.Name, i.buildSnapshot(api.MsgTypeUpdate))
	}

	// Логи рассылаются всем одинаковые, после отправки они больше не нужны
	i.Logs = []api.LogEntry{}
}

// SessionReplay возвращает копию записи с текущим числом тиков
func (i *Instance) SessionReplay() domain.ReplaySession {
	i.mu.RLock()
	defer i.mu.RUnlock()

	s := *i.Replay
	s.Ticks = i.CurrentTick
	s.Actions = append([]domain.ReplayAction(nil), i.Replay.Actions...)
	return s
}
