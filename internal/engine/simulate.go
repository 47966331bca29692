package engine

import (
	"fmt"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
	"ursa-server/pkg/level"
)

// Simulate проигрывает запись без сети и таймеров.
// Действия применяются на своем тике до шага симуляции, как в живом цикле.
func Simulate(file *level.File, profiles config.Profiles, session *domain.ReplaySession) (*Instance, error) {
	if session.LevelName != file.Name {
		return nil, fmt.Errorf("replay is for level %q, got %q", session.LevelName, file.Name)
	}

	inst, err := NewInstance(file, profiles, session.Seed)
	if err != nil {
		return nil, err
	}

	next := 0
	for tick := 0; tick < session.Ticks; tick++ {
		for next < len(session.Actions) && session.Actions[next].Tick <= tick {
			act := session.Actions[next]
			inst.ApplyCommand(domain.InternalCommand{Action: act.Action, Payload: act.Payload})
			next++
		}
		inst.Step()
	}

	// Хвост после последнего тика
	for ; next < len(session.Actions); next++ {
		act := session.Actions[next]
		inst.ApplyCommand(domain.InternalCommand{Action: act.Action, Payload: act.Payload})
	}
	return inst, nil
}
