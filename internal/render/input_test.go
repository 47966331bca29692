package render

import (
	"encoding/json"
	"testing"
	"ursa-server/pkg/api"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyToCommand_Move(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		dx, dy float64
	}{
		{"w", runeKey('w'), 0, -1},
		{"s", runeKey('s'), 0, 1},
		{"a", runeKey('a'), -1, 0},
		{"d", runeKey('D'), 1, 0},
		{"space stops", runeKey(' '), 0, 0},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 0, -1},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, act := KeyToCommand(tt.ev, nil)
			require.Equal(t, KeySend, act)
			assert.Equal(t, "MOVE", cmd.Action)

			var p api.MovePayload
			require.NoError(t, json.Unmarshal(cmd.Payload, &p))
			assert.Equal(t, tt.dx, p.Dx)
			assert.Equal(t, tt.dy, p.Dy)
			assert.NoError(t, p.Validate())
		})
	}
}

func TestKeyToCommand_RetryAndQuit(t *testing.T) {
	cmd, act := KeyToCommand(runeKey('r'), nil)
	assert.Equal(t, KeySend, act)
	assert.Equal(t, "RETRY", cmd.Action)

	_, act = KeyToCommand(runeKey('q'), nil)
	assert.Equal(t, KeyQuit, act)

	_, act = KeyToCommand(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil)
	assert.Equal(t, KeyQuit, act)

	_, act = KeyToCommand(runeKey('x'), nil)
	assert.Equal(t, KeyNone, act)
}

func TestKeyToCommand_StunByIndex(t *testing.T) {
	agents := []string{"guard-1", "guard-2"}

	cmd, act := KeyToCommand(runeKey('2'), agents)
	require.Equal(t, KeySend, act)
	assert.Equal(t, "STUN", cmd.Action)

	var p api.StunPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &p))
	assert.Equal(t, "guard-2", p.AgentID)
	assert.Equal(t, ViewerStunTicks, p.Ticks)
	assert.NoError(t, p.Validate())

	// Врага с таким номером нет
	_, act = KeyToCommand(runeKey('3'), agents)
	assert.Equal(t, KeyNone, act)
}
