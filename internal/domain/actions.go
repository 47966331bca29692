package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionRetry
	ActionStun
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":  ActionInit,
	"MOVE":  ActionMove,
	"RETRY": ActionRetry,
	"STUN":  ActionStun,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:  "INIT",
	ActionMove:  "MOVE",
	ActionRetry: "RETRY",
	ActionStun:  "STUN",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsRecorded - попадает ли действие в реплей (влияет на симуляцию)
func (a ActionType) IsRecorded() bool {
	return a == ActionMove || a == ActionRetry || a == ActionStun
}
