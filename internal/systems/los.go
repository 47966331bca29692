package systems

import (
	"ursa-server/internal/domain"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя точками мира по сетке обнаружения.
// Алгоритм Брезенхэма по клеткам (только целочисленная арифметика).
// Стартовая и конечная клетки не проверяются: агент и игрок могут касаться стен.
func HasLineOfSight(g *DetectionGrid, from, to domain.Vec2) bool {
	p1 := g.WorldToTile(from)
	p2 := g.WorldToTile(to)

	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx, sy := sign(x1-x0), sign(y1-y0)

	err := dx - dy

	for {
		isStartPoint := x0 == p1.X && y0 == p1.Y
		isEndPoint := x0 == p2.X && y0 == p2.Y

		if !isStartPoint && !isEndPoint {
			if g.Blocked(domain.Tile{X: x0, Y: y0}) {
				if logger.Log.IsLevelEnabled(logrus.TraceLevel) {
					logger.Log.WithFields(logrus.Fields{
						"component":      "los",
						"start_tile":     p1,
						"end_tile":       p2,
						"blocking_point": domain.Tile{X: x0, Y: y0},
					}).Trace("Line of sight blocked")
				}
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
