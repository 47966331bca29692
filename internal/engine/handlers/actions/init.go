package actions

import (
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
)

// HandleInit только приветствует. Полный снимок с картой инстанс отправляет сам.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать. Не попадайтесь охране.",
		MsgType: domain.LogTypeInfo,
	}, nil
}
