package handlers

import (
	"encoding/json"
	"ursa-server/internal/domain"
)

// LevelControl - то, что хендлер может делать с уровнем.
// Instance неявно реализует этот интерфейс.
type LevelControl interface {
	// SetPlayerInput задает направление движения игрока. false, если игрок пойман.
	SetPlayerInput(dir domain.Vec2) bool
	// Retry перезапускает уровень
	Retry()
	// StunAgent оглушает врага на ticks тиков
	StunAgent(id string, ticks int) error
}

// Context передает хендлеру состояние уровня.
// Хендлер меняет уровень только через Level.
type Context struct {
	Level LevelControl
	Token string // Кто прислал команду
	Tick  int    // Текущий тик уровня
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи уровня напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ALERT, ADMIN)
}

// HandlerFunc - это контракт для любой команды (MOVE, RETRY, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
