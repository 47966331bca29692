package actions

import (
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
	"ursa-server/pkg/api"
)

// HandleMove задает направление игрока. Направление действует до следующей команды.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	if !ctx.Level.SetPlayerInput(domain.Vec2{X: p.Dx, Y: p.Dy}) {
		return handlers.Result{Msg: "Вы пойманы. RETRY, чтобы начать заново.", MsgType: domain.LogTypeInfo}, nil
	}
	return handlers.EmptyResult(), nil
}
