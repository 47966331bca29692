package render

import (
	"fmt"
	"strings"
	"ursa-server/internal/core/types"
	"ursa-server/internal/core/types/enums"
	"ursa-server/internal/domain"
	"ursa-server/internal/systems"
	"ursa-server/pkg/api"
)

// Frame - снимок уровня, разложенный по клеткам экрана (одна клетка сетки = один символ)
type Frame struct {
	Width, Height int
	Cells         []types.Glyph // 0 - пустая клетка
	Status        string

	offX, offY int // левый верхний угол окна в клетках сетки
}

// At возвращает символ клетки экрана
func (f Frame) At(x, y int) types.Glyph {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Cells[y*f.Width+x]
}

func (f *Frame) put(t domain.Tile, g types.Glyph) {
	x, y := t.X-f.offX, t.Y-f.offY
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.Cells[y*f.Width+x] = g
}

// Compose раскладывает снимок в окно w x h вокруг игрока.
// Слои снизу вверх: пол и стены, маршрутные точки, память врагов, враги, игрок.
func Compose(snap api.Snapshot, grid *systems.DetectionGrid, route []domain.Vec2, w, h int) Frame {
	f := Frame{Width: w, Height: h, Cells: make([]types.Glyph, w*h), Status: status(snap)}
	if grid == nil {
		f.Status = "waiting for INIT..."
		return f
	}

	// 1. Камера
	pt := grid.WorldToTile(snap.Player.Pos)
	f.offX = clamp(pt.X-w/2, 0, max(0, grid.Width-w))
	f.offY = clamp(pt.Y-h/2, 0, max(0, grid.Height-h))

	// 2. Карта
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := domain.Tile{X: x + f.offX, Y: y + f.offY}
			if !grid.InBounds(t) {
				continue
			}
			if grid.Blocked(t) {
				f.put(t, types.GlyphWall)
			} else {
				f.put(t, types.GlyphFloor)
			}
		}
	}

	for _, p := range route {
		f.put(grid.WorldToTile(p), types.GlyphWaypoint)
	}

	// 3. Память и враги
	for _, a := range snap.Agents {
		for _, s := range a.Sightings {
			f.put(grid.WorldToTile(s), types.GlyphSighting)
		}
	}
	for _, a := range snap.Agents {
		state, err := enums.ParseBehaviorState(a.State)
		g := types.StateGlyph(state)
		if err != nil {
			g = types.StateGlyph(enums.BehaviorState(enums.StateCount))
		}
		f.put(grid.WorldToTile(a.Pos), g)
	}

	// 4. Игрок поверх всего
	f.put(pt, types.GlyphPlayer)
	return f
}

func status(snap api.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  tick %d", snap.Level, snap.Tick)
	if snap.Caught {
		b.WriteString("  CAUGHT (r - retry)")
	}
	for _, a := range snap.Agents {
		fmt.Fprintf(&b, "  %s:%s", a.ID, a.State)
		if a.Adaptive {
			b.WriteString("+")
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
