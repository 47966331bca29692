package render

import (
	"testing"
	"ursa-server/internal/domain"
	"ursa-server/pkg/api"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_DrawOnSimulationScreen(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	defer ss.Fini()
	ss.SetSize(40, 20)

	r := NewRenderer(ss)
	w, h := r.ViewSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20-hudRows, h)

	snap := api.Snapshot{
		Level:  "yard",
		Player: api.PlayerView{Pos: domain.Vec2{X: 24, Y: 24}},
		Agents: []api.AgentView{{ID: "guard-1", State: "WANDER", Pos: domain.Vec2{X: 88, Y: 24}}},
	}
	f := Compose(snap, testGrid(), nil, w, h)

	logs := []string{"one", "two", "три", "four", "five", "a very long line that does not fit into forty columns at all"}
	assert.NotPanics(t, func() { r.Draw(f, logs) })
}

func TestRenderer_DrawTextClipsAtEdge(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	defer ss.Fini()
	ss.SetSize(10, 3)

	r := NewRenderer(ss)
	end := r.drawText(0, 0, "abcdefghijklmnop", tcell.StyleDefault)
	assert.Equal(t, 10, end)

	// Широкий символ занимает две колонки
	end = r.drawText(0, 1, "猫a", tcell.StyleDefault)
	assert.Equal(t, 3, end)
}
