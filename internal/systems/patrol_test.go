package systems

import (
	"math"
	"testing"
	"ursa-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patrolABC() []domain.Waypoint {
	return []domain.Waypoint{
		{Pos: domain.Vec2{X: 0, Y: 0}},
		{Pos: domain.Vec2{X: 100, Y: 0}, LookAngles: []float64{math.Pi / 2, 0}, RotationDelay: 2, RotationSpeed: math.Pi / 4},
		{Pos: domain.Vec2{X: 100, Y: 100}, MoveDelay: 3},
	}
}

func positions(ws []domain.Waypoint) []domain.Vec2 {
	out := make([]domain.Vec2, len(ws))
	for i, w := range ws {
		out[i] = w.Pos
	}
	return out
}

func TestPatrolSequencer_Rotation(t *testing.T) {
	wps := patrolABC()
	s := NewPatrolSequencer(wps, 0.1)

	cur, ok := s.CurrentTarget()
	require.True(t, ok)
	assert.Equal(t, wps[0].Pos, cur.Pos)

	s.Advance()
	// [A,B,C] -> [B,C,A]
	assert.Equal(t, []domain.Vec2{wps[1].Pos, wps[2].Pos, wps[0].Pos}, positions(s.Order()))

	s.Advance()
	s.Advance()
	assert.Equal(t, positions(wps), positions(s.Order()), "full cycle returns to start")
}

func TestPatrolSequencer_Empty(t *testing.T) {
	s := NewPatrolSequencer(nil, 0.1)

	_, ok := s.CurrentTarget()
	assert.False(t, ok)
	assert.False(t, s.Advance())
	assert.False(t, s.Rotating())
	assert.Equal(t, 1.5, s.StepRotation(1.5))
}

func TestPatrolSequencer_ScriptStepping(t *testing.T) {
	s := NewPatrolSequencer(patrolABC(), 0.1)

	// Новая цель B имеет скрипт
	require.True(t, s.Advance())
	require.True(t, s.Rotating())

	facing := 0.0
	// Pi/2 при скорости Pi/4: два тика
	facing = s.StepRotation(facing)
	assert.InDelta(t, math.Pi/4, facing, 1e-9)
	facing = s.StepRotation(facing)
	assert.InDelta(t, math.Pi/2, facing, 1e-9)
	assert.Equal(t, 1, s.PendingSteps())

	// Пауза между шагами
	facing = s.StepRotation(facing)
	facing = s.StepRotation(facing)
	assert.InDelta(t, math.Pi/2, facing, 1e-9)
	assert.True(t, s.Rotating())

	facing = s.StepRotation(facing)
	facing = s.StepRotation(facing)
	assert.InDelta(t, 0, facing, 1e-9)
	assert.False(t, s.Rotating())
}

func TestPatrolSequencer_MoveDelay(t *testing.T) {
	s := NewPatrolSequencer(patrolABC(), 0.1)
	s.Advance()
	// Цель C: пауза 3 тика
	assert.False(t, s.Advance())

	waited := 0
	for !s.ConsumeMoveDelay() {
		waited++
	}
	assert.Equal(t, 3, waited)
}

func TestPatrolSequencer_DefaultSpeed(t *testing.T) {
	wps := []domain.Waypoint{
		{Pos: domain.Vec2{}},
		{Pos: domain.Vec2{X: 10}, LookAngles: []float64{1.0}},
	}
	s := NewPatrolSequencer(wps, 0.25)
	s.Advance()

	assert.InDelta(t, 0.25, s.StepRotation(0), 1e-9)
}

func TestPatrolSequencer_ResetRestoresOrder(t *testing.T) {
	wps := patrolABC()
	s := NewPatrolSequencer(wps, 0.1)
	s.Advance()
	s.StepRotation(0)

	s.Reset()
	assert.Equal(t, positions(wps), positions(s.Order()))
	assert.False(t, s.Rotating())

	// Изменение исходного слайса не влияет на секвенсор
	wps[0].Pos = domain.Vec2{X: -1}
	cur, _ := s.CurrentTarget()
	assert.Equal(t, domain.Vec2{}, cur.Pos)
}
