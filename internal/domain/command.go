package domain

import (
	"encoding/json"
	"ursa-server/internal/core/types/enums"
)

// InternalCommand - оптимизированная команда для инстанса.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType      // Число! Быстро и безопасно.
	Token   string          // ID сессии, приславшей команду
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

// Command - намерение, которое контроллер врага отдает физике за один тик
type Command struct {
	State    enums.BehaviorState `json:"state"`
	Velocity Vec2                `json:"velocity"` // пикс/тик
	Facing   float64             `json:"facing"`   // радианы
	Impulse  Vec2                `json:"impulse,omitempty"`
}
