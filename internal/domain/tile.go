package domain

// Tile - координата клетки сетки обнаружения
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает соседнюю клетку со смещением (текущая не меняется)
func (t Tile) Shift(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// IsAdjacent возвращает true, если клетки соседние (включая диагональ)
func (t Tile) IsAdjacent(other Tile) bool {
	dx := abs(t.X - other.X)
	dy := abs(t.Y - other.Y)

	// Если разница по X и Y не больше 1, значит соседи
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// ChebyshevTo - число шагов между клетками при 8-связности
func (t Tile) ChebyshevTo(other Tile) int {
	return max(abs(t.X-other.X), abs(t.Y-other.Y))
}

// Neighbors8 - смещения соседей в порядке N, NE, E, SE, S, SW, W, NW
var Neighbors8 = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
