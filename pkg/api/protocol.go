package api

import (
	"encoding/json"
	"ursa-server/internal/domain"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MsgTypeInit   = "INIT"   // полный снимок с картой, отправляется при подключении
	MsgTypeUpdate = "UPDATE" // снимок тика без карты
)

// Snapshot это корневой объект, который сервер отправляет клиенту.
// Один снимок уровня на тик, одинаковый для всех наблюдателей.
type Snapshot struct {
	// Type тип сообщения: INIT или UPDATE.
	Type string `json:"type"`

	// Level имя уровня (инстанса).
	Level string `json:"level"`

	// Tick номер тика симуляции с момента старта или последнего RETRY.
	Tick int `json:"tick"`

	// Caught true, если один из врагов поймал игрока. До RETRY ввод игрока игнорируется.
	Caught bool `json:"caught"`

	// Grid метаданные сетки обнаружения. Только в INIT.
	Grid *GridMeta `json:"grid,omitempty"`

	Player PlayerView  `json:"player"`
	Agents []AgentView `json:"agents"`

	// Logs новые сообщения уровня с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta описывает сетку обнаружения, чтобы клиент мог нарисовать стены.
type GridMeta struct {
	Width    int           `json:"w"`
	Height   int           `json:"h"`
	TileSize float64       `json:"tileSize"`
	Origin   domain.Vec2   `json:"origin"`
	Blocked  []domain.Tile `json:"blocked"`
}

// PlayerView это DTO игрока.
type PlayerView struct {
	Pos      domain.Vec2 `json:"pos"`
	Velocity domain.Vec2 `json:"velocity"`
}

// AgentView это DTO врага.
type AgentView struct {
	ID       string      `json:"id"`
	State    string      `json:"state"`
	Pos      domain.Vec2 `json:"pos"`
	Facing   float64     `json:"facing"` // градусы
	Velocity domain.Vec2 `json:"velocity"`

	// Sightings позиции игрока в памяти врага, начиная с самой свежей.
	Sightings []domain.Vec2 `json:"sightings,omitempty"`

	Adaptive bool `json:"adaptive"`
	Stunned  bool `json:"stunned"`
	Alerted  bool `json:"alerted"`
}

// LogEntry представляет одну запись в логе уровня.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ALERT, CAUGHT, ADMIN
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии. Если пустой в первом сообщении, сервер выдаст свой.
	Token string `json:"token,omitempty"`

	// Level уровень, к которому подключается клиент. Обязателен в первом сообщении.
	Level string `json:"level,omitempty"`

	// Action название действия: INIT, MOVE, RETRY, STUN.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// MovePayload направление движения игрока. Компоненты в [-1, 1], длина не больше 1.
// Нулевой вектор - остановка.
type MovePayload struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
}

// StunPayload админская команда оглушения врага.
type StunPayload struct {
	AgentID string `json:"agentId"`
	Ticks   int    `json:"ticks"`
}
