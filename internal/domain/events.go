package domain

import "strings"

// EventType - Внутренний числовой идентификатор события уровня
type EventType uint8

const (
	EventUnknown EventType = iota
	EventStateChanged
	EventPlayerCaught
	EventLevelRetry
	EventAgentStunned
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"STATE_CHANGED": EventStateChanged,
	"PLAYER_CAUGHT": EventPlayerCaught,
	"LEVEL_RETRY":   EventLevelRetry,
	"AGENT_STUNNED": EventAgentStunned,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventStateChanged: "STATE_CHANGED",
	EventPlayerCaught: "PLAYER_CAUGHT",
	EventLevelRetry:   "LEVEL_RETRY",
	EventAgentStunned: "AGENT_STUNNED",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToType[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}
