package domain

import "math"

// Vec2 - точка или вектор в мировых координатах уровня (пиксели)
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

// Len возвращает длину вектора
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// DistanceTo возвращает евклидово расстояние до другой точки
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Len() }

func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize возвращает единичный вектор. Нулевой вектор остается нулевым.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Angle - направление вектора в радианах (atan2)
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// FromAngle строит единичный вектор по углу
func FromAngle(a float64) Vec2 { return Vec2{X: math.Cos(a), Y: math.Sin(a)} }

// Rect - прямоугольное статичное препятствие (AABB)
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

func (r Rect) MaxX() float64 { return r.X + r.W }

func (r Rect) MaxY() float64 { return r.Y + r.H }

// Overlaps проверяет пересечение с ненулевой площадью (касание краями не считается)
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X &&
		r.Y < o.MaxY() && r.MaxY() > o.Y
}

// Contains проверяет, лежит ли точка внутри прямоугольника
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// BoundingBox возвращает общий AABB всех прямоугольников.
// false, если список пуст.
func BoundingBox(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}

	minX, minY := rects[0].X, rects[0].Y
	maxX, maxY := rects[0].MaxX(), rects[0].MaxY()
	for _, r := range rects[1:] {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.MaxX())
		maxY = math.Max(maxY, r.MaxY())
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// --- Углы ---

// NormalizeAngle приводит угол к диапазону (-Pi, Pi]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngleDiff возвращает кратчайшую знаковую разницу to - from
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// RotateToward поворачивает угол cur к target не более чем на step радиан.
// Второе значение - достигнут ли target на этом шаге.
func RotateToward(cur, target, step float64) (float64, bool) {
	diff := AngleDiff(cur, target)
	if math.Abs(diff) <= step {
		return NormalizeAngle(target), true
	}
	if diff > 0 {
		return NormalizeAngle(cur + step), false
	}
	return NormalizeAngle(cur - step), false
}

// Deg2Rad переводит градусы (формат файлов уровней) в радианы
func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }

// Rad2Deg - обратное преобразование, для снапшотов и логов
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }
