package engine

import (
	"fmt"
	"time"
	"ursa-server/internal/domain"
	"ursa-server/pkg/api"

	"github.com/sirupsen/logrus"
)

// maxPendingLogs - сколько логов держим между снимками
const maxPendingLogs = 100

// AddLog добавляет лог в историю инстанса
func (i *Instance) AddLog(text, logType string) {
	if logType == "" {
		logType = domain.LogTypeInfo
	}
	i.logSeq++
	if len(i.Logs) >= maxPendingLogs {
		i.Logs = i.Logs[1:]
	}
	i.Logs = append(i.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d_%d", i.Name, i.CurrentTick, i.logSeq),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	i.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"tick":      i.CurrentTick,
	}).Info(text)
}

// logEvent - AddLog с типом события для структурных логов
func (i *Instance) logEvent(ev domain.EventType, text, logType string) {
	i.log.WithField("event", ev.String()).Debug(text)
	i.AddLog(text, logType)
}
