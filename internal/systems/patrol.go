package systems

import (
	"ursa-server/internal/domain"
)

// PatrolSequencer - циклическая очередь точек патрулирования.
// Голова очереди - текущая цель. Достигнутая голова уходит в хвост.
type PatrolSequencer struct {
	initial []domain.Waypoint
	queue   []domain.Waypoint

	defaultSpeed float64 // рад/тик, если у точки не задано

	// Скрипт поворотов, принятый при последнем Advance
	script    []float64
	speed     float64
	stepDelay int
	stepWait  int // осталось ждать до следующего шага
	moveWait  int // осталось стоять перед движением
}

// NewPatrolSequencer копирует точки, внешний слайс можно менять
func NewPatrolSequencer(waypoints []domain.Waypoint, defaultSpeed float64) *PatrolSequencer {
	s := &PatrolSequencer{
		initial:      cloneWaypoints(waypoints),
		defaultSpeed: defaultSpeed,
	}
	s.Reset()
	return s
}

func cloneWaypoints(src []domain.Waypoint) []domain.Waypoint {
	out := make([]domain.Waypoint, len(src))
	for i, w := range src {
		w.LookAngles = append([]float64(nil), w.LookAngles...)
		out[i] = w
	}
	return out
}

// CurrentTarget возвращает голову очереди. false, если точек нет.
func (s *PatrolSequencer) CurrentTarget() (domain.Waypoint, bool) {
	if len(s.queue) == 0 {
		return domain.Waypoint{}, false
	}
	return s.queue[0], true
}

// Advance переносит голову в хвост и загружает скрипт и задержки новой цели.
// Возвращает true, если принят скрипт поворотов.
func (s *PatrolSequencer) Advance() bool {
	if len(s.queue) == 0 {
		return false
	}

	head := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue[len(s.queue)-1] = head

	next := s.queue[0]
	s.script = append(s.script[:0], next.LookAngles...)
	s.speed = next.RotationSpeed
	if s.speed <= 0 {
		s.speed = s.defaultSpeed
	}
	s.stepDelay = next.RotationDelay
	s.stepWait = 0
	s.moveWait = next.MoveDelay

	return len(s.script) > 0
}

// Rotating - скрипт поворотов еще не доигран
func (s *PatrolSequencer) Rotating() bool {
	return len(s.script) > 0 || s.stepWait > 0
}

// StepRotation делает один тик скрипта и возвращает новый угол взгляда
func (s *PatrolSequencer) StepRotation(facing float64) float64 {
	if s.stepWait > 0 {
		s.stepWait--
		return facing
	}
	if len(s.script) == 0 {
		return facing
	}

	next, reached := domain.RotateToward(facing, s.script[0], s.speed)
	if reached {
		s.script = s.script[1:]
		if len(s.script) > 0 {
			s.stepWait = s.stepDelay
		}
	}
	return next
}

// ConsumeMoveDelay уменьшает паузу перед движением. true - можно идти.
func (s *PatrolSequencer) ConsumeMoveDelay() bool {
	if s.moveWait > 0 {
		s.moveWait--
		return false
	}
	return true
}

// PendingSteps - сколько углов скрипта осталось
func (s *PatrolSequencer) PendingSteps() int { return len(s.script) }

// Order возвращает копию текущего порядка обхода
func (s *PatrolSequencer) Order() []domain.Waypoint {
	return cloneWaypoints(s.queue)
}

func (s *PatrolSequencer) Len() int { return len(s.queue) }

// Reset возвращает исходный порядок и сбрасывает скрипт
func (s *PatrolSequencer) Reset() {
	s.queue = cloneWaypoints(s.initial)
	s.script = nil
	s.speed = s.defaultSpeed
	s.stepDelay = 0
	s.stepWait = 0
	s.moveWait = 0
}
