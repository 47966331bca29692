package physics

import (
	"testing"
	"ursa-server/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWorld_BodyMoves(t *testing.T) {
	w := NewWorld(nil)
	b := w.AddBody(domain.Vec2{X: 10, Y: 10}, 0, 8)

	b.SetVelocity(domain.Vec2{X: 2, Y: 1})
	for i := 0; i < 10; i++ {
		w.Step()
	}

	pos := b.Position()
	assert.InDelta(t, 30, pos.X, 1e-6)
	assert.InDelta(t, 20, pos.Y, 1e-6)
}

func TestWorld_WallBlocks(t *testing.T) {
	w := NewWorld([]domain.Rect{{X: 40, Y: 0, W: 20, H: 100}})
	b := w.AddBody(domain.Vec2{X: 20, Y: 50}, 0, 8)

	for i := 0; i < 40; i++ {
		b.SetVelocity(domain.Vec2{X: 2})
		w.Step()
	}

	// Центр круга не ближе радиуса к стене, тело прижато к ней
	assert.LessOrEqual(t, b.Position().X, 32.0+1e-6)
	assert.InDelta(t, 32, b.Position().X, 0.5)
	assert.InDelta(t, 50, b.Position().Y, 1e-6)
	assert.LessOrEqual(t, b.Velocity().X, 1e-9)
}

func TestWorld_SlidesAlongWall(t *testing.T) {
	w := NewWorld([]domain.Rect{{X: 40, Y: 0, W: 20, H: 200}})
	b := w.AddBody(domain.Vec2{X: 31, Y: 50}, 0, 8)

	for i := 0; i < 20; i++ {
		b.SetVelocity(domain.Vec2{X: 2, Y: 2})
		w.Step()
	}

	// В стену не входит, вдоль стены едет
	assert.LessOrEqual(t, b.Position().X, 32.0+1e-6)
	assert.Greater(t, b.Position().Y, 80.0)
}

func TestWorld_PushesOutOfCorner(t *testing.T) {
	w := NewWorld([]domain.Rect{
		{X: 40, Y: 0, W: 20, H: 100},
		{X: 0, Y: 60, W: 60, H: 20},
	})
	b := w.AddBody(domain.Vec2{X: 20, Y: 30}, 0, 8)

	for i := 0; i < 60; i++ {
		b.SetVelocity(domain.Vec2{X: 2, Y: 2})
		w.Step()
	}

	pos := b.Position()
	assert.LessOrEqual(t, pos.X, 32.0+1e-6)
	assert.LessOrEqual(t, pos.Y, 52.0+1e-6)
}

func TestBody_Stun(t *testing.T) {
	w := NewWorld(nil)
	b := w.AddBody(domain.Vec2{}, 0, 8)

	b.Stun(3)
	assert.True(t, b.IsStunned())
	b.Stun(1) // короче текущего - не сокращает
	assert.Equal(t, 3, b.StunLeft())

	for i := 0; i < 3; i++ {
		w.Step()
	}
	assert.False(t, b.IsStunned())
}

func TestBody_TeleportClearsState(t *testing.T) {
	w := NewWorld(nil)
	b := w.AddBody(domain.Vec2{}, 0, 8)
	b.SetVelocity(domain.Vec2{X: 3})
	b.Stun(10)

	b.Teleport(domain.Vec2{X: 50, Y: 60}, 4)

	assert.Equal(t, domain.Vec2{X: 50, Y: 60}, b.Position())
	assert.True(t, b.Velocity().IsZero())
	assert.False(t, b.IsStunned())
	assert.InDelta(t, domain.NormalizeAngle(4), b.Facing(), 1e-9)
}

func TestBody_ApplyImpulse(t *testing.T) {
	w := NewWorld(nil)
	b := w.AddBody(domain.Vec2{}, 0, 8)

	b.ApplyImpulse(domain.Vec2{X: 2})
	// Масса 1: импульс равен приросту скорости
	assert.InDelta(t, 2, b.Velocity().X, 1e-9)
}
