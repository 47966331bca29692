package enums

import (
	"fmt"
	"strings"
)

// BehaviorState - поведенческое состояние врага.
// Нулевое значение - SPAWN, в него агент возвращается при Reset.
type BehaviorState uint8

const (
	StateSpawn BehaviorState = iota
	StateWander
	StateLooking
	StateConfused
	StateChase
	StateAttack
	StateWon
	StateStunned
)

// StateCount - количество состояний (для таблиц и итерации в тестах)
const StateCount = 8

var behaviorStateToString = [StateCount]string{
	StateSpawn:    "SPAWN",
	StateWander:   "WANDER",
	StateLooking:  "LOOKING",
	StateConfused: "CONFUSED",
	StateChase:    "CHASE",
	StateAttack:   "ATTACK",
	StateWon:      "WON",
	StateStunned:  "STUNNED",
}

// String возвращает строковое представление (для логов и дебага)
func (s BehaviorState) String() string {
	if int(s) < StateCount {
		return behaviorStateToString[s]
	}
	return "UNKNOWN"
}

// ParseBehaviorState конвертирует строку в Enum (снапшоты, реплеи, тесты)
func ParseBehaviorState(s string) (BehaviorState, error) {
	upper := strings.ToUpper(s)
	for i, name := range behaviorStateToString {
		if name == upper {
			return BehaviorState(i), nil
		}
	}
	return StateSpawn, fmt.Errorf("unknown behavior state %q", s)
}

// MarshalText - в JSON состояние уходит строкой
func (s BehaviorState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - обратное преобразование
func (s *BehaviorState) UnmarshalText(data []byte) error {
	v, err := ParseBehaviorState(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsAggressive - агент преследует игрока (для подсветки в клиентах)
func (s BehaviorState) IsAggressive() bool {
	return s == StateChase || s == StateAttack
}
