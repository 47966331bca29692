package physics

import (
	"ursa-server/internal/domain"

	"github.com/jakecoffman/cp"
)

const (
	// tickDt - шаг интегратора. Скорости хранятся в пикселях за тик.
	tickDt = 1.0

	wallFriction = 0.0
	bodyMass     = 1.0

	// contactSlop - зазор, с которого скорость в стену уже срезается
	contactSlop = 0.5
)

// World - физика уровня: статичные препятствия + круглые тела агентов и игрока
type World struct {
	space  *cp.Space
	walls  []*cp.Shape
	bodies []*Body
}

// NewWorld создает пространство и добавляет препятствия как статичные коробки
func NewWorld(obstacles []domain.Rect) *World {
	space := cp.NewSpace()
	var walls []*cp.Shape

	for _, r := range obstacles {
		box := cp.NewBox2(space.StaticBody, cp.BB{L: r.X, B: r.Y, R: r.MaxX(), T: r.MaxY()}, 0)
		box.SetFriction(wallFriction)
		box.SetElasticity(0)
		space.AddShape(box)
		walls = append(walls, box)
	}

	return &World{space: space, walls: walls}
}

// AddBody создает динамическое тело-круг. Вращение выключено (бесконечный момент),
// направление взгляда хранится отдельно.
func (w *World) AddBody(pos domain.Vec2, facing, radius float64) *Body {
	cb := w.space.AddBody(cp.NewBody(bodyMass, cp.INFINITY))
	cb.SetPosition(toCP(pos))

	shape := w.space.AddShape(cp.NewCircle(cb, radius, cp.Vector{}))
	shape.SetFriction(wallFriction)
	shape.SetElasticity(0)

	b := &Body{body: cb, facing: facing, radius: radius}
	w.bodies = append(w.bodies, b)
	return b
}

// Step продвигает симуляцию на один тик и отсчитывает таймеры оглушения.
// Контроллеры задают скорость каждый тик заново, поэтому солвер сам не успевает
// вытолкнуть тело из стены: скорость в стену срезается до шага, проникновение
// убирается после.
func (w *World) Step() {
	for _, b := range w.bodies {
		w.clipVelocity(b)
	}
	w.space.Step(tickDt)
	for _, b := range w.bodies {
		w.pushOut(b)
		b.advance()
	}
}

// clipVelocity убирает составляющую скорости, направленную в касающуюся стену
func (w *World) clipVelocity(b *Body) {
	v := b.body.Velocity()
	for _, wall := range w.walls {
		info := wall.PointQuery(b.body.Position())
		if info.Distance > b.radius+contactSlop {
			continue
		}
		// Gradient направлен от стены наружу
		if vn := v.Dot(info.Gradient); vn < 0 {
			v = v.Sub(info.Gradient.Mult(vn))
		}
	}
	b.body.SetVelocity(v.X, v.Y)
}

// pushOut выталкивает центр тела на расстояние радиуса от каждой стены
func (w *World) pushOut(b *Body) {
	for _, wall := range w.walls {
		pos := b.body.Position()
		info := wall.PointQuery(pos)
		if depth := b.radius - info.Distance; depth > 0 {
			b.body.SetPosition(pos.Add(info.Gradient.Mult(depth)))
		}
	}
}

func (w *World) Bodies() []*Body { return w.bodies }

func toCP(v domain.Vec2) cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func fromCP(v cp.Vector) domain.Vec2 { return domain.Vec2{X: v.X, Y: v.Y} }
