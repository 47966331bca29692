package domain

import "encoding/json"

// ReplayAction - это запись одного внешнего воздействия на уровень (ввод игрока, RETRY, STUN)
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись погони
type ReplaySession struct {
	LevelName string         `json:"levelName"`
	Seed      int64          `json:"seed"` // Зерно рандома контроллеров
	Timestamp int64          `json:"timestamp"`
	Ticks     int            `json:"ticks"` // Сколько тиков прошло к моменту сохранения
	Actions   []ReplayAction `json:"actions"`
}
