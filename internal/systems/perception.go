package systems

import (
	"math"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
)

// Observation - срез мира для одного агента на текущий тик
type Observation struct {
	Self         domain.Vec2
	Facing       float64
	Player       domain.Vec2
	PlayerMoving bool
	Adaptive     bool // подсказка от памяти: расширить дальность
}

// Perception - адаптер восприятия: конус взгляда + луч по сетке + шум.
// Обновляется миром раз в тик до контроллера.
type Perception struct {
	grid    *DetectionGrid
	profile config.Profile

	visible  bool
	heard    bool
	distance float64
}

func NewPerception(grid *DetectionGrid, profile config.Profile) *Perception {
	return &Perception{grid: grid, profile: profile, distance: math.Inf(1)}
}

// Refresh пересчитывает сигналы
func (p *Perception) Refresh(o Observation) {
	p.distance = o.Self.DistanceTo(o.Player)

	sightRange := p.profile.SightRange
	if o.Adaptive {
		sightRange *= p.profile.AdaptiveRangeScale
	}

	p.visible = false
	if p.distance <= sightRange {
		angle := o.Player.Sub(o.Self).Angle()
		inCone := p.distance == 0 ||
			math.Abs(domain.AngleDiff(o.Facing, angle)) <= p.profile.SightHalfAngleRad()
		if inCone && (p.grid == nil || HasLineOfSight(p.grid, o.Self, o.Player)) {
			p.visible = true
		}
	}

	p.heard = o.PlayerMoving && p.distance <= p.profile.NoiseRadius
}

// IsAlerted - игрок виден или слышен
func (p *Perception) IsAlerted() bool { return p.visible || p.heard }

func (p *Perception) Visible() bool { return p.visible }

func (p *Perception) Heard() bool { return p.heard }

func (p *Perception) DistanceToPlayer() float64 { return p.distance }

// InRange - игрок ближе radius
func (p *Perception) InRange(radius float64) bool { return p.distance <= radius }
