package main

import (
	"fmt"
	"ursa-server/internal/render"
	"ursa-server/internal/systems"
	"ursa-server/pkg/api"
)

// maxViewerLogs - сколько строк лога держит просмотрщик
const maxViewerLogs = 50

// viewer - состояние терминального клиента между снимками
type viewer struct {
	grid *systems.DetectionGrid
	last api.Snapshot
	logs []string
}

// apply принимает снимок. Сетка приходит только в INIT.
func (v *viewer) apply(snap api.Snapshot) {
	if g := snap.Grid; g != nil {
		v.grid = systems.NewBlockedGrid(g.Width, g.Height, g.TileSize, g.Origin, g.Blocked)
	}
	v.last = snap

	for _, l := range snap.Logs {
		v.logs = append(v.logs, fmt.Sprintf("[%s] %s", l.Type, l.Text))
	}
	if extra := len(v.logs) - maxViewerLogs; extra > 0 {
		v.logs = v.logs[extra:]
	}
}

// agentIDs - порядок врагов для цифровых клавиш
func (v *viewer) agentIDs() []string {
	ids := make([]string, 0, len(v.last.Agents))
	for _, a := range v.last.Agents {
		ids = append(ids, a.ID)
	}
	return ids
}

func (v *viewer) frame(w, h int) render.Frame {
	return render.Compose(v.last, v.grid, nil, w, h)
}
