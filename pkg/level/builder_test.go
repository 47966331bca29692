package level

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	f, err := NewBuilder("generated", rand.New(rand.NewSource(42))).
		WithRooms(8).
		WithGuards(3).
		WithLookScripts().
		Build()
	require.NoError(t, err)

	assert.NotEmpty(t, f.Obstacles)
	assert.Len(t, f.Enemies, 3)
	assert.False(t, f.inObstacle(f.Player.Spawn))

	for _, e := range f.Enemies {
		assert.False(t, f.inObstacle(e.Spawn), "%s spawn", e.ID)
		require.Len(t, e.Waypoints, 4)
		for _, w := range e.Route() {
			assert.False(t, f.inObstacle(w.Pos), "%s waypoint %v", e.ID, w.Pos)
		}
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	build := func() *File {
		f, err := NewBuilder("seeded", rand.New(rand.NewSource(7))).WithRooms(6).WithGuards(2).Build()
		require.NoError(t, err)
		return f
	}

	assert.Equal(t, build(), build())
}

func TestBuilder_RoundTripYAML(t *testing.T) {
	f, err := NewBuilder("rt", rand.New(rand.NewSource(1))).WithRooms(5).WithGuards(1).Build()
	require.NoError(t, err)

	data, err := f.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f.Obstacles, back.Obstacles)
	assert.Equal(t, f.Enemies[0].Route(), back.Enemies[0].Route())
}

func TestBuilder_ObstaclesMergeRows(t *testing.T) {
	b := NewBuilder("tiny", rand.New(rand.NewSource(1))).WithSize(4, 1).WithCellSize(10)
	b.walls = [][]bool{{true, true, false, true}}

	obs := b.obstacles()
	require.Len(t, obs, 2)
	assert.Equal(t, 20.0, obs[0].W)
	assert.Equal(t, 30.0, obs[1].X)
}
