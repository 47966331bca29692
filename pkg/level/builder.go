package level

import (
	"fmt"
	"math/rand"
	"ursa-server/internal/domain"
)

// Константы генерации (в клетках)
const (
	DefaultWidth  = 40
	DefaultHeight = 25
	MinRoomSize   = 5
	MaxRoomSize   = 10

	// DefaultCellSize - пикселей в клетке генератора
	DefaultCellSize = 32.0
)

// room - комната в клетках генератора
type room struct {
	X, Y, W, H int
}

func (r room) center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r room) intersects(other room) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Builder предоставляет fluent API для процедурных уровней:
// комнаты и коридоры превращаются в прямоугольные препятствия, охрана патрулирует комнаты.
type Builder struct {
	name     string
	width    int
	height   int
	cell     float64
	profile  string
	rooms    []room
	walls    [][]bool
	enemies  []EnemySpec
	rng      *rand.Rand
	scripted bool
}

// NewBuilder создает builder уровня
func NewBuilder(name string, rng *rand.Rand) *Builder {
	return &Builder{
		name:   name,
		width:  DefaultWidth,
		height: DefaultHeight,
		cell:   DefaultCellSize,
		rng:    rng,
	}
}

// WithSize устанавливает размер карты в клетках
func (b *Builder) WithSize(width, height int) *Builder {
	b.width = width
	b.height = height
	return b
}

// WithCellSize - размер клетки генератора в пикселях
func (b *Builder) WithCellSize(px float64) *Builder {
	b.cell = px
	return b
}

// WithProfile задает профиль сложности по умолчанию
func (b *Builder) WithProfile(name string) *Builder {
	b.profile = name
	return b
}

// WithLookScripts включает скрипты осмотра на углах маршрутов
func (b *Builder) WithLookScripts() *Builder {
	b.scripted = true
	return b
}

func (b *Builder) randRange(lo, hi int) int {
	return b.rng.Intn(hi-lo+1) + lo
}

// WithRooms генерирует комнаты и соединяет их коридорами
func (b *Builder) WithRooms(maxRooms int) *Builder {
	b.walls = make([][]bool, b.height)
	for y := range b.walls {
		row := make([]bool, b.width)
		for x := range row {
			row[x] = true
		}
		b.walls[y] = row
	}

	b.rooms = make([]room, 0, maxRooms)
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(MinRoomSize, MaxRoomSize)
		h := b.randRange(MinRoomSize, MaxRoomSize)
		if w >= b.width-2 || h >= b.height-2 {
			continue
		}
		x := b.randRange(1, b.width-w-1)
		y := b.randRange(1, b.height-h-1)

		newRoom := room{X: x, Y: y, W: w, H: h}

		failed := false
		for _, other := range b.rooms {
			if newRoom.intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		b.carveRoom(newRoom)
		if len(b.rooms) > 0 {
			prevX, prevY := b.rooms[len(b.rooms)-1].center()
			currX, currY := newRoom.center()

			if b.rng.Intn(2) == 0 {
				b.carveH(prevX, currX, prevY)
				b.carveV(prevY, currY, currX)
			} else {
				b.carveV(prevY, currY, prevX)
				b.carveH(prevX, currX, currY)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	return b
}

func (b *Builder) carveRoom(r room) {
	for y := r.Y + 1; y < r.Y+r.H; y++ {
		for x := r.X + 1; x < r.X+r.W; x++ {
			b.walls[y][x] = false
		}
	}
}

func (b *Builder) carveH(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		b.walls[y][x] = false
	}
}

func (b *Builder) carveV(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		b.walls[y][x] = false
	}
}

// cellCenter - центр клетки в пикселях
func (b *Builder) cellCenter(x, y int) domain.Vec2 {
	return domain.Vec2{X: (float64(x) + 0.5) * b.cell, Y: (float64(y) + 0.5) * b.cell}
}

// WithGuards ставит по охраннику в случайные комнаты (кроме первой - там игрок).
// Маршрут - обход внутренних углов комнаты.
func (b *Builder) WithGuards(count int) *Builder {
	if len(b.rooms) < 2 {
		return b
	}

	for i := 0; i < count; i++ {
		r := b.rooms[b.rng.Intn(len(b.rooms)-1)+1]
		x0, y0 := r.X+1, r.Y+1
		x1, y1 := r.X+r.W-1, r.Y+r.H-1

		corners := [][2]int{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
		// Случайное направление обхода
		if b.rng.Intn(2) == 0 {
			corners[1], corners[3] = corners[3], corners[1]
		}

		spec := EnemySpec{
			ID:      fmt.Sprintf("guard-%d", i+1),
			Spawn:   b.cellCenter(corners[0][0], corners[0][1]),
			Profile: b.profile,
		}
		for ci, c := range corners {
			p := b.cellCenter(c[0], c[1])
			wp := WaypointSpec{X: p.X, Y: p.Y, MoveDelay: b.randRange(0, 20)}
			if b.scripted && ci%2 == 1 {
				base := float64(b.rng.Intn(4)) * 90
				wp.Look = []float64{base - 45, base + 45}
				wp.RotationDelay = 15
			}
			spec.Waypoints = append(spec.Waypoints, wp)
		}
		b.enemies = append(b.enemies, spec)
	}
	return b
}

// obstacles склеивает горизонтальные отрезки стен в прямоугольники
func (b *Builder) obstacles() []domain.Rect {
	var out []domain.Rect
	for y, row := range b.walls {
		start := -1
		for x := 0; x <= len(row); x++ {
			wall := x < len(row) && row[x]
			if wall && start < 0 {
				start = x
			}
			if !wall && start >= 0 {
				out = append(out, domain.Rect{
					X: float64(start) * b.cell,
					Y: float64(y) * b.cell,
					W: float64(x-start) * b.cell,
					H: b.cell,
				})
				start = -1
			}
		}
	}
	return out
}

// Build собирает уровень
func (b *Builder) Build() (*File, error) {
	if b.walls == nil {
		b.WithRooms(8)
	}
	if len(b.rooms) == 0 {
		return nil, fmt.Errorf("level %q: no rooms generated", b.name)
	}

	px, py := b.rooms[0].center()
	f := &File{
		Name:      b.name,
		AgentSize: b.cell / 2,
		Profile:   b.profile,
		Obstacles: b.obstacles(),
		Player:    PlayerSpec{Spawn: b.cellCenter(px, py)},
		Enemies:   b.enemies,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}
