package systems

import (
	"math"
	"ursa-server/internal/config"
	"ursa-server/internal/core/types/enums"
)

// maxCounter - потолок всех счетчиков записи
const maxCounter = math.MaxInt32

// Record - все счетчики поведения одного агента
type Record struct {
	State enums.BehaviorState `json:"state"`
	Tick  int                 `json:"tick"` // тиков с последнего Reset

	DetectedTicks  int `json:"detectedTicks"` // alerted подряд
	SpottedTicks   int `json:"spottedTicks"`  // spotted подряд
	ConfusionTicks int `json:"confusionTicks"`
	AttackTicks    int `json:"attackTicks"`
	LookTicks      int `json:"lookTicks"`
	CaptureTicks   int `json:"captureTicks"` // подряд в радиусе захвата
	StunTicks      int `json:"stunTicks"`

	Searching bool `json:"searching"` // осмотр после потери игрока, а не по скрипту точки
	Adaptive  bool `json:"adaptive"`
}

// Signals - входы автомата на один тик
type Signals struct {
	Alerted        bool
	Spotted        bool
	Stunned        bool
	Rotating       bool    // у секвенсора есть недоигранный скрипт поворотов
	Distance       float64 // до игрока
	SinceDetection int     // тиков без alerted
}

func inc(v int) int {
	if v < maxCounter {
		return v + 1
	}
	return v
}

// Transition - чистая функция перехода (record, signals, profile) -> record'.
// Охранные условия проверяются по порядку, срабатывает первое.
func Transition(r Record, s Signals, p config.Profile) Record {
	r.Tick = inc(r.Tick)

	if s.Alerted {
		r.DetectedTicks = inc(r.DetectedTicks)
	} else {
		r.DetectedTicks = 0
	}
	if s.Spotted {
		r.SpottedTicks = inc(r.SpottedTicks)
	} else {
		r.SpottedTicks = 0
	}

	// Оглушение перебивает любое состояние, кроме победы
	if s.Stunned && r.State != enums.StateWon {
		if r.State != enums.StateStunned {
			r = enter(r, enums.StateStunned)
		}
		r.StunTicks = inc(r.StunTicks)
		return r
	}

	detected := r.DetectedTicks >= p.DetectionDelay

	switch r.State {
	case enums.StateSpawn:
		switch {
		case r.Tick < p.SpawnGrace:
		case detected:
			r = enter(r, enums.StateConfused)
		default:
			r = enter(r, enums.StateWander)
		}

	case enums.StateWander:
		switch {
		case s.Rotating:
			r = enter(r, enums.StateLooking)
		case detected:
			r = enter(r, enums.StateConfused)
		}

	case enums.StateLooking:
		switch {
		case s.Spotted:
			r = enter(r, enums.StateChase)
		case detected:
			r = enter(r, enums.StateConfused)
		case !s.Rotating && !(r.Searching && r.LookTicks < p.LookAroundTicks):
			r = enter(r, enums.StateWander)
		default:
			r.LookTicks = inc(r.LookTicks)
		}

	case enums.StateConfused:
		switch {
		case r.ConfusionTicks <= 0:
			r = enter(r, enums.StateLooking)
		case r.ConfusionTicks >= p.ConfuseTime:
			if s.Spotted {
				r = enter(r, enums.StateChase)
			} else {
				r = enter(r, enums.StateLooking)
			}
		case s.Alerted:
			r.ConfusionTicks = inc(r.ConfusionTicks)
		case s.Distance <= p.NearRadius:
			r = enter(r, enums.StateChase)
		default:
			r.ConfusionTicks = max(0, r.ConfusionTicks-1)
		}

	case enums.StateChase:
		switch {
		case s.Spotted:
			r = enter(r, enums.StateAttack)
		case s.Distance <= p.ChaseRadius:
		case s.SinceDetection >= p.ChaseMemory:
			r = enter(r, enums.StateConfused)
		default:
			r = enter(r, enums.StateLooking)
		}

	case enums.StateAttack:
		if s.Distance <= p.CaptureRadius {
			r.CaptureTicks = inc(r.CaptureTicks)
		} else {
			r.CaptureTicks = 0
		}
		switch {
		case r.CaptureTicks >= p.CollisionConfirm:
			r = enter(r, enums.StateWon)
		case s.Spotted:
			r.AttackTicks = inc(r.AttackTicks)
		default:
			r.AttackTicks = 0
			r = enter(r, enums.StateChase)
		}

	case enums.StateWon:
		// терминальное

	case enums.StateStunned:
		// Оглушение закончилось: полный сброс поведения, тик сохраняется
		r = enter(r, enums.StateSpawn)
		r.DetectedTicks = 0
		r.SpottedTicks = 0

	default:
		// Неизвестное значение: возвращаемся в безопасное состояние
		r = enter(r, enums.StateSpawn)
	}

	return r
}

// enter переключает состояние и сбрасывает локальные счетчики нового состояния
func enter(r Record, next enums.BehaviorState) Record {
	prev := r.State
	r.State = next

	switch next {
	case enums.StateConfused:
		r.ConfusionTicks = 1
	case enums.StateLooking:
		r.LookTicks = 0
		r.Searching = prev != enums.StateWander
	case enums.StateAttack:
		r.AttackTicks = 1
		r.CaptureTicks = 0
	case enums.StateChase:
		r.AttackTicks = 0
	case enums.StateStunned:
		r.StunTicks = 0
	case enums.StateSpawn:
		r.ConfusionTicks = 0
		r.AttackTicks = 0
		r.LookTicks = 0
		r.CaptureTicks = 0
		r.StunTicks = 0
		r.Searching = false
	}
	return r
}
