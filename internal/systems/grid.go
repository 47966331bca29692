package systems

import (
	"errors"
	"math"
	"math/rand"
	"ursa-server/internal/domain"
)

var (
	// ErrFrontierCap - поиск исчерпал лимит раскрытых клеток
	ErrFrontierCap = errors.New("search frontier cap reached")
	// ErrNoPath - цель недостижима из стартовой клетки
	ErrNoPath = errors.New("no path to goal")
)

// DetectionGrid - сетка заблокированных клеток, построенная по статичным препятствиям.
// После постройки только читается, поэтому одна сетка делится между всеми агентами уровня.
type DetectionGrid struct {
	Width, Height int
	TileSize      float64
	Origin        domain.Vec2

	blocked []bool
}

// NewDetectionGrid строит сетку по AABB препятствий.
// Размер клетки = agentSize * scale.
func NewDetectionGrid(obstacles []domain.Rect, agentSize, scale float64) *DetectionGrid {
	tile := agentSize * scale
	if tile <= 0 {
		tile = domain.DefaultAgentSize
	}

	bb, ok := domain.BoundingBox(obstacles)
	if !ok {
		// Нет препятствий - одна свободная клетка
		return &DetectionGrid{Width: 1, Height: 1, TileSize: tile, blocked: make([]bool, 1)}
	}

	g := &DetectionGrid{
		Width:    max(1, int(math.Ceil(bb.W/tile))),
		Height:   max(1, int(math.Ceil(bb.H/tile))),
		TileSize: tile,
		Origin:   domain.Vec2{X: bb.X, Y: bb.Y},
	}
	g.blocked = make([]bool, g.Width*g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			cell := g.TileRect(domain.Tile{X: x, Y: y})
			for _, o := range obstacles {
				if cell.Overlaps(o) {
					g.blocked[y*g.Width+x] = true
					break
				}
			}
		}
	}
	return g
}

// ParseGrid строит сетку из ASCII-карты: '#' - стена, остальное свободно.
// Используется в тестах.
func ParseGrid(rows []string, tileSize float64) *DetectionGrid {
	g := &DetectionGrid{Height: len(rows), TileSize: tileSize}
	for _, r := range rows {
		g.Width = max(g.Width, len(r))
	}
	g.blocked = make([]bool, g.Width*g.Height)
	for y, r := range rows {
		for x, ch := range r {
			if ch == '#' {
				g.blocked[y*g.Width+x] = true
			}
		}
	}
	return g
}

// NewBlockedGrid восстанавливает сетку по списку занятых клеток (снимок INIT у клиентов).
// Клетки вне размеров игнорируются.
func NewBlockedGrid(width, height int, tileSize float64, origin domain.Vec2, blocked []domain.Tile) *DetectionGrid {
	g := &DetectionGrid{Width: width, Height: height, TileSize: tileSize, Origin: origin}
	g.blocked = make([]bool, width*height)
	for _, t := range blocked {
		if g.InBounds(t) {
			g.blocked[g.index(t)] = true
		}
	}
	return g
}

// InBounds проверяет, что клетка внутри сетки
func (g *DetectionGrid) InBounds(t domain.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < g.Width && t.Y < g.Height
}

// Blocked - клетка занята препятствием. Выход за границы считается блокирующим.
func (g *DetectionGrid) Blocked(t domain.Tile) bool {
	if !g.InBounds(t) {
		return true
	}
	return g.blocked[g.index(t)]
}

func (g *DetectionGrid) index(t domain.Tile) int {
	return t.Y*g.Width + t.X
}

// WorldToTile переводит мировые координаты в клетку (без обрезки по границам)
func (g *DetectionGrid) WorldToTile(p domain.Vec2) domain.Tile {
	return domain.Tile{
		X: int(math.Floor((p.X - g.Origin.X) / g.TileSize)),
		Y: int(math.Floor((p.Y - g.Origin.Y) / g.TileSize)),
	}
}

// TileCenter - центр клетки в мировых координатах
func (g *DetectionGrid) TileCenter(t domain.Tile) domain.Vec2 {
	return domain.Vec2{
		X: g.Origin.X + (float64(t.X)+0.5)*g.TileSize,
		Y: g.Origin.Y + (float64(t.Y)+0.5)*g.TileSize,
	}
}

// TileRect - прямоугольник клетки в мировых координатах
func (g *DetectionGrid) TileRect(t domain.Tile) domain.Rect {
	return domain.Rect{
		X: g.Origin.X + float64(t.X)*g.TileSize,
		Y: g.Origin.Y + float64(t.Y)*g.TileSize,
		W: g.TileSize,
		H: g.TileSize,
	}
}

// BlockedCount - число заблокированных клеток (для логов и debug)
func (g *DetectionGrid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// --- Поиск ---

// SearchScratch - рабочие массивы поиска (visited/goal/parent).
// Принадлежит одному агенту и очищается перед каждым поиском.
type SearchScratch struct {
	visited []bool
	goal    []bool
	parent  []int32
	queue   []int32
}

// reset подгоняет размер и очищает состояние
func (s *SearchScratch) reset(n int) {
	if cap(s.visited) < n {
		s.visited = make([]bool, n)
		s.goal = make([]bool, n)
		s.parent = make([]int32, n)
	}
	s.visited = s.visited[:n]
	s.goal = s.goal[:n]
	s.parent = s.parent[:n]
	clear(s.visited)
	clear(s.goal)
	for i := range s.parent {
		s.parent[i] = -1
	}
	s.queue = s.queue[:0]
}

// Visited - была ли клетка раскрыта последним поиском
func (s *SearchScratch) Visited(idx int) bool {
	return idx >= 0 && idx < len(s.visited) && s.visited[idx]
}

// Search - ограниченный BFS по 8 соседям. Срезать углы по диагонали нельзя.
// Возвращает путь без стартовой клетки, последняя клетка - цель.
// Не более maxFrontier раскрытых клеток, иначе ErrFrontierCap.
func (g *DetectionGrid) Search(start, goal domain.Tile, maxFrontier int, scratch *SearchScratch) ([]domain.Tile, error) {
	if !g.InBounds(start) || g.Blocked(goal) {
		return nil, ErrNoPath
	}
	scratch.reset(len(g.blocked))
	if start == goal {
		return nil, nil
	}

	startIdx := g.index(start)
	goalIdx := g.index(goal)
	scratch.goal[goalIdx] = true
	scratch.visited[startIdx] = true
	scratch.queue = append(scratch.queue, int32(startIdx))

	expanded := 0
	for head := 0; head < len(scratch.queue); head++ {
		if expanded >= maxFrontier {
			return nil, ErrFrontierCap
		}
		expanded++

		cur := int(scratch.queue[head])
		ct := domain.Tile{X: cur % g.Width, Y: cur / g.Width}

		for _, d := range domain.Neighbors8 {
			if !g.canStep(ct, d[0], d[1]) {
				continue
			}
			nt := ct.Shift(d[0], d[1])

			ni := g.index(nt)
			if scratch.visited[ni] {
				continue
			}
			scratch.visited[ni] = true
			scratch.parent[ni] = int32(cur)

			if scratch.goal[ni] {
				return g.buildPath(scratch, startIdx, ni), nil
			}
			scratch.queue = append(scratch.queue, int32(ni))
		}
	}

	return nil, ErrNoPath
}

// canStep - можно ли шагнуть из t на соседа (dx, dy).
// Диагональ только если обе ортогональные клетки свободны.
func (g *DetectionGrid) canStep(t domain.Tile, dx, dy int) bool {
	if g.Blocked(t.Shift(dx, dy)) {
		return false
	}
	if dx != 0 && dy != 0 {
		return !g.Blocked(t.Shift(dx, 0)) && !g.Blocked(t.Shift(0, dy))
	}
	return true
}

func (g *DetectionGrid) buildPath(s *SearchScratch, startIdx, goalIdx int) []domain.Tile {
	var path []domain.Tile
	for idx := goalIdx; idx != startIdx && idx >= 0; idx = int(s.parent[idx]) {
		path = append(path, domain.Tile{X: idx % g.Width, Y: idx / g.Width})
	}
	// Разворачиваем: от старта к цели
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// RandomOpenNeighbor выбирает равновероятно одну из соседних клеток, куда можно шагнуть
// (те же правила, что в Search). false, если таких нет.
func (g *DetectionGrid) RandomOpenNeighbor(t domain.Tile, rng *rand.Rand) (domain.Tile, bool) {
	var open [8]domain.Tile
	n := 0
	for _, d := range domain.Neighbors8 {
		if g.canStep(t, d[0], d[1]) {
			open[n] = t.Shift(d[0], d[1])
			n++
		}
	}
	if n == 0 {
		return t, false
	}
	return open[rng.Intn(n)], true
}
