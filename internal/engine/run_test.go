package engine

import (
	"context"
	"testing"
	"time"
	"ursa-server/internal/domain"
	"ursa-server/internal/network"
	"ursa-server/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstance_RunPublishesAndApplies(t *testing.T) {
	inst := newTestInstance(t, 1)
	hub := network.NewBroadcaster()
	inst.Hub = hub
	ch := hub.Register("viewer", inst.Name)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		inst.Run(ctx, time.Millisecond)
		close(done)
	}()

	inst.CommandChan <- command(t, domain.ActionMove, api.MovePayload{Dx: 1})

	deadline := time.After(2 * time.Second)
	var last api.Snapshot
	for last.Tick < 20 {
		select {
		case last = <-ch:
		case <-deadline:
			t.Fatal("no snapshots from running instance")
		}
	}
	cancel()
	<-done

	assert.Equal(t, api.MsgTypeUpdate, last.Type)
	assert.Equal(t, "corridor", last.Level)
	require.Len(t, last.Agents, 1)
	assert.Greater(t, last.Player.Pos.X, 50.0)
}
