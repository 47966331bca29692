package admin

import (
	"fmt"
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
	"ursa-server/pkg/api"
)

// HandleStun: { "agentId": "guard-1", "ticks": 60 }
func HandleStun(ctx handlers.Context, p api.StunPayload) (handlers.Result, error) {
	if err := ctx.Level.StunAgent(p.AgentID, p.Ticks); err != nil {
		return handlers.Result{Msg: fmt.Sprintf("Stun failed: %v", err), MsgType: domain.LogTypeAdmin}, nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s оглушен на %d тиков", p.AgentID, p.Ticks),
		MsgType: domain.LogTypeAdmin,
	}, nil
}
