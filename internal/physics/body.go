package physics

import (
	"ursa-server/internal/domain"

	"github.com/jakecoffman/cp"
)

// Body - тело агента в физическом мире.
// Реализует интерфейс тела контроллера поведения.
type Body struct {
	body   *cp.Body
	facing float64
	radius float64

	stunLeft int // тиков оглушения осталось
}

func (b *Body) Position() domain.Vec2 { return fromCP(b.body.Position()) }

func (b *Body) Velocity() domain.Vec2 { return fromCP(b.body.Velocity()) }

func (b *Body) Facing() float64 { return b.facing }

func (b *Body) Radius() float64 { return b.radius }

func (b *Body) IsStunned() bool { return b.stunLeft > 0 }

func (b *Body) StunLeft() int { return b.stunLeft }

func (b *Body) SetVelocity(v domain.Vec2) { b.body.SetVelocity(v.X, v.Y) }

func (b *Body) SetFacing(angle float64) { b.facing = domain.NormalizeAngle(angle) }

// ApplyImpulse толкает тело через центр масс
func (b *Body) ApplyImpulse(j domain.Vec2) {
	b.body.ApplyImpulseAtWorldPoint(toCP(j), b.body.Position())
}

// Teleport переносит тело без скорости и снимает оглушение
func (b *Body) Teleport(pos domain.Vec2, facing float64) {
	b.body.SetPosition(toCP(pos))
	b.body.SetVelocity(0, 0)
	b.facing = domain.NormalizeAngle(facing)
	b.stunLeft = 0
}

// Stun оглушает тело на ticks тиков. Повторное оглушение продлевает таймер.
func (b *Body) Stun(ticks int) {
	if ticks > b.stunLeft {
		b.stunLeft = ticks
	}
}

func (b *Body) advance() {
	if b.stunLeft > 0 {
		b.stunLeft--
	}
}
