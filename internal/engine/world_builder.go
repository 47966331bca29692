package engine

import (
	"fmt"
	"math/rand"
	"ursa-server/internal/config"
	"ursa-server/internal/physics"
	"ursa-server/internal/systems"
	"ursa-server/pkg/level"
)

// Agent - враг уровня: контроллер, восприятие и физическое тело
type Agent struct {
	Ctrl       *systems.Controller
	Perception *systems.Perception
	Body       *physics.Body

	rng  *rand.Rand
	seed int64
}

// buildWorld собирает сетку, физику, игрока и врагов по описанию уровня
func (i *Instance) buildWorld(file *level.File, profiles config.Profiles) error {
	base, err := profiles.Get(file.Profile)
	if err != nil {
		return fmt.Errorf("level %s: %w", file.Name, err)
	}

	size := file.TileSize()
	radius := size / 2

	// 1. Сетка обнаружения общая для всех агентов
	i.Grid = systems.NewDetectionGrid(file.Obstacles, size, base.TileScale)

	// 2. Физика
	i.World = physics.NewWorld(file.Obstacles)
	i.Player = i.World.AddBody(file.Player.Spawn, 0, radius)
	i.playerSpawn = file.Player.Spawn

	// 3. Враги
	i.Agents = make([]*Agent, 0, len(file.Enemies))
	for idx, e := range file.Enemies {
		name := e.Profile
		if name == "" {
			name = file.Profile
		}
		p, err := profiles.Get(name)
		if err != nil {
			return fmt.Errorf("enemy %s: %w", e.ID, err)
		}
		if p, err = p.Merge(e.Overrides); err != nil {
			return fmt.Errorf("enemy %s: %w", e.ID, err)
		}
		// Переопределения могут сломать согласованный профиль
		if err := p.Validate(); err != nil {
			return fmt.Errorf("enemy %s: invalid profile: %w", e.ID, err)
		}

		seed := i.Seed + int64(idx) + 1
		rng := rand.New(rand.NewSource(seed))
		body := i.World.AddBody(e.Spawn, e.FacingRad(), radius)
		perception := systems.NewPerception(i.Grid, p)

		ctrl := systems.NewController(systems.ControllerSpec{
			ID:        e.ID,
			Spawn:     e.Spawn,
			Facing:    e.FacingRad(),
			Waypoints: e.Route(),
			Profile:   p,
			Player:    i.Player.Position,
			Senses:    perception,
			Body:      body,
			Steering:  systems.NewSteering(p, i.Grid, rng),
			Rng:       rng,
		})

		i.Agents = append(i.Agents, &Agent{
			Ctrl:       ctrl,
			Perception: perception,
			Body:       body,
			rng:        rng,
			seed:       seed,
		})
	}
	return nil
}
