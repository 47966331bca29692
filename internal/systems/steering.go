package systems

import (
	"math/rand"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
)

// Steering переводит "куда нужно" в вектор скорости на текущий тик
type Steering interface {
	Steer(from, to domain.Vec2, speed float64) domain.Vec2
	Reset()
}

// DirectSteering - прямое руление к цели без учета препятствий
type DirectSteering struct{}

func (DirectSteering) Steer(from, to domain.Vec2, speed float64) domain.Vec2 {
	return seek(from, to, speed)
}

func (DirectSteering) Reset() {}

// seek - вектор к цели длиной speed, без перелета
func seek(from, to domain.Vec2, speed float64) domain.Vec2 {
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 || speed <= 0 {
		return domain.Vec2{}
	}
	if dist < speed {
		return d
	}
	return d.Scale(speed / dist)
}

// fallbackTTL - сколько тиков агент идет к клетке запасного хода
const fallbackTTL = 30

// GridSteering ведет агента по ограниченному BFS на сетке обнаружения.
// Если поиск не удался, агент уходит на случайную соседнюю свободную клетку.
// Сетка общая, scratch и rng принадлежат агенту.
type GridSteering struct {
	grid     *DetectionGrid
	cap      int
	rng      *rand.Rand
	scratch  SearchScratch
	fallback *domain.Tile
	// тиков до сброса запасного хода
	fallbackLeft int

	Fallbacks int // сколько раз сработал запасной ход
}

// NewGridSteering - rng обязателен для воспроизводимости
func NewGridSteering(grid *DetectionGrid, maxFrontier int, rng *rand.Rand) *GridSteering {
	return &GridSteering{grid: grid, cap: maxFrontier, rng: rng}
}

func (s *GridSteering) Steer(from, to domain.Vec2, speed float64) domain.Vec2 {
	// 1. Доводим начатый запасной ход
	// Сбрасываем, если клетка достигнута, вышло время или агента унесло от нее
	if s.fallback != nil {
		cur := s.grid.WorldToTile(from)
		s.fallbackLeft--
		if cur != *s.fallback && s.fallbackLeft > 0 && chebyshev(cur, *s.fallback) <= 1 {
			return seek(from, s.grid.TileCenter(*s.fallback), speed)
		}
		s.fallback = nil
		s.fallbackLeft = 0
	}

	// 2. Цель в прямой видимости - идем напрямую
	if HasLineOfSight(s.grid, from, to) {
		return seek(from, to, speed)
	}

	// 3. Ограниченный поиск
	start := s.grid.WorldToTile(from)
	goal := s.grid.WorldToTile(to)
	path, err := s.grid.Search(start, goal, s.cap, &s.scratch)
	if err == nil {
		if len(path) == 0 {
			return seek(from, to, speed)
		}
		return seek(from, s.grid.TileCenter(path[0]), speed)
	}

	// 4. Запасной ход на случайную безопасную клетку
	s.Fallbacks++
	if n, ok := s.grid.RandomOpenNeighbor(start, s.rng); ok {
		s.fallback = &n
		s.fallbackLeft = fallbackTTL
		return seek(from, s.grid.TileCenter(n), speed)
	}
	return domain.Vec2{}
}

func (s *GridSteering) Reset() {
	s.fallback = nil
	s.fallbackLeft = 0
}

// Fallback - клетка текущего запасного хода, если он есть
func (s *GridSteering) Fallback() (domain.Tile, bool) {
	if s.fallback == nil {
		return domain.Tile{}, false
	}
	return *s.fallback, true
}

func chebyshev(a, b domain.Tile) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// NewSteering выбирает способ руления по профилю
func NewSteering(p config.Profile, grid *DetectionGrid, rng *rand.Rand) Steering {
	if p.Navigation == config.NavigationGrid && grid != nil {
		return NewGridSteering(grid, p.SearchFrontierCap, rng)
	}
	return DirectSteering{}
}
