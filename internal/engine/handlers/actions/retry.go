package actions

import (
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
)

func HandleRetry(ctx handlers.Context) (handlers.Result, error) {
	ctx.Level.Retry()
	return handlers.Result{Msg: "Уровень перезапущен.", MsgType: domain.LogTypeInfo}, nil
}
