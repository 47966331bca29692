package engine

import (
	"math"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
	"ursa-server/internal/systems"
	"ursa-server/pkg/api"
)

// buildSnapshot создает слепок уровня. Все зрители видят одно и то же.
// Вызывается под блокировкой инстанса.
func (i *Instance) buildSnapshot(msgType string) api.Snapshot {
	snap := api.Snapshot{
		Type:   msgType,
		Level:  i.Name,
		Tick:   i.CurrentTick,
		Caught: i.Caught,
		Player: api.PlayerView{
			Pos:      i.Player.Position(),
			Velocity: i.Player.Velocity(),
		},
		Agents: make([]api.AgentView, 0, len(i.Agents)),
	}

	// 1. Карта только в INIT
	if msgType == api.MsgTypeInit {
		snap.Grid = i.gridMeta()
	}

	// 2. Враги
	for _, a := range i.Agents {
		snap.Agents = append(snap.Agents, toAgentView(a))
	}

	// 3. Копия логов, чтобы не было гонки данных
	if len(i.Logs) > 0 {
		snap.Logs = make([]api.LogEntry, len(i.Logs))
		copy(snap.Logs, i.Logs)
	}
	return snap
}

func (i *Instance) gridMeta() *api.GridMeta {
	g := i.Grid
	meta := &api.GridMeta{
		Width:    g.Width,
		Height:   g.Height,
		TileSize: g.TileSize,
		Origin:   g.Origin,
		Blocked:  make([]domain.Tile, 0, g.BlockedCount()),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := domain.Tile{X: x, Y: y}
			if g.Blocked(t) {
				meta.Blocked = append(meta.Blocked, t)
			}
		}
	}
	return meta
}

// toAgentView конвертирует агента в DTO
func toAgentView(a *Agent) api.AgentView {
	rec := a.Ctrl.Record()
	return api.AgentView{
		ID:        a.Ctrl.ID(),
		State:     rec.State.String(),
		Pos:       a.Body.Position(),
		Facing:    domain.Rad2Deg(a.Body.Facing()),
		Velocity:  a.Body.Velocity(),
		Sightings: a.Ctrl.Memory().Recent(),
		Adaptive:  rec.Adaptive,
		Stunned:   a.Body.IsStunned(),
		Alerted:   a.Perception.IsAlerted(),
	}
}

// AgentDebug - полное внутреннее состояние агента для /debug/agents
type AgentDebug struct {
	ID            string         `json:"id"`
	Record        systems.Record `json:"record"`
	Profile       config.Profile `json:"profile"`
	Pos           domain.Vec2    `json:"pos"`
	Facing        float64        `json:"facing"`
	Sightings     []domain.Vec2  `json:"sightings"`
	TimesDetected int            `json:"times_detected"`
	Route         []domain.Vec2  `json:"route"`
	StunLeft      int            `json:"stun_left"`
	Visible       bool           `json:"visible"`
	Heard         bool           `json:"heard"`
	Distance      float64        `json:"distance"`
}

// DebugAgents возвращает дамп агентов. Безопасно вызывать из других горутин.
func (i *Instance) DebugAgents() []AgentDebug {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]AgentDebug, 0, len(i.Agents))
	for _, a := range i.Agents {
		route := make([]domain.Vec2, 0, a.Ctrl.Patrol().Len())
		for _, wp := range a.Ctrl.Patrol().Order() {
			route = append(route, wp.Pos)
		}

		dist := a.Perception.DistanceToPlayer()
		if math.IsInf(dist, 0) {
			dist = -1 // JSON не умеет Inf
		}

		out = append(out, AgentDebug{
			ID:            a.Ctrl.ID(),
			Record:        a.Ctrl.Record(),
			Profile:       a.Ctrl.Profile(),
			Pos:           a.Body.Position(),
			Facing:        domain.Rad2Deg(a.Body.Facing()),
			Sightings:     a.Ctrl.Memory().Recent(),
			TimesDetected: a.Ctrl.Memory().TimesDetected(),
			Route:         route,
			StunLeft:      a.Body.StunLeft(),
			Visible:       a.Perception.Visible(),
			Heard:         a.Perception.Heard(),
			Distance:      dist,
		})
	}
	return out
}

// InstanceSummary - строка списка /debug/instances
type InstanceSummary struct {
	Level    string `json:"level"`
	Tick     int    `json:"tick"`
	Agents   int    `json:"agents"`
	Caught   bool   `json:"caught"`
	Actions  int    `json:"recorded_actions"`
	GridSize [2]int `json:"grid_size"`
}

func (i *Instance) Summary() InstanceSummary {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return InstanceSummary{
		Level:    i.Name,
		Tick:     i.CurrentTick,
		Agents:   len(i.Agents),
		Caught:   i.Caught,
		Actions:  len(i.Replay.Actions),
		GridSize: [2]int{i.Grid.Width, i.Grid.Height},
	}
}
