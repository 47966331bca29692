package level

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"

	"gopkg.in/yaml.v3"
)

// File - описание уровня в YAML: препятствия, игрок, враги с маршрутами.
// Углы в файле в градусах, в домене - в радианах.
type File struct {
	Name      string        `yaml:"name" json:"name" jsonschema:"required"`
	AgentSize float64       `yaml:"agent_size,omitempty" json:"agent_size,omitempty" jsonschema:"description=Agent diameter in pixels, sets detection grid tile size"`
	Profile   string        `yaml:"profile,omitempty" json:"profile,omitempty" jsonschema:"description=Default difficulty profile for enemies"`
	Obstacles []domain.Rect `yaml:"obstacles" json:"obstacles"`
	Player    PlayerSpec    `yaml:"player" json:"player" jsonschema:"required"`
	Enemies   []EnemySpec   `yaml:"enemies" json:"enemies"`
}

type PlayerSpec struct {
	Spawn domain.Vec2 `yaml:"spawn" json:"spawn"`
}

// EnemySpec - враг уровня
type EnemySpec struct {
	ID        string           `yaml:"id" json:"id" jsonschema:"required"`
	Spawn     domain.Vec2      `yaml:"spawn" json:"spawn"`
	Facing    float64          `yaml:"facing_deg,omitempty" json:"facing_deg,omitempty"`
	Profile   string           `yaml:"profile,omitempty" json:"profile,omitempty"`
	Overrides config.Overrides `yaml:"overrides,omitempty" json:"overrides,omitempty" jsonschema:"description=Per-enemy profile threshold overrides"`
	Waypoints []WaypointSpec   `yaml:"waypoints,omitempty" json:"waypoints,omitempty"`
}

// WaypointSpec - точка маршрута в формате файла
type WaypointSpec struct {
	X             float64   `yaml:"x" json:"x"`
	Y             float64   `yaml:"y" json:"y"`
	Look          []float64 `yaml:"look,omitempty" json:"look,omitempty" jsonschema:"description=Facing angles in degrees played on arrival"`
	MoveDelay     int       `yaml:"move_delay,omitempty" json:"move_delay,omitempty" jsonschema:"minimum=0"`
	RotationDelay int       `yaml:"rotation_delay,omitempty" json:"rotation_delay,omitempty" jsonschema:"minimum=0"`
	RotationSpeed float64   `yaml:"rotation_speed_deg,omitempty" json:"rotation_speed_deg,omitempty" jsonschema:"minimum=0"`
}

// Waypoint переводит точку в доменный формат
func (w WaypointSpec) Waypoint() domain.Waypoint {
	wp := domain.Waypoint{
		Pos:           domain.Vec2{X: w.X, Y: w.Y},
		MoveDelay:     w.MoveDelay,
		RotationDelay: w.RotationDelay,
		RotationSpeed: domain.Deg2Rad(w.RotationSpeed),
	}
	for _, a := range w.Look {
		wp.LookAngles = append(wp.LookAngles, domain.Deg2Rad(a))
	}
	return wp
}

// Route - маршрут врага в доменном формате
func (e EnemySpec) Route() []domain.Waypoint {
	out := make([]domain.Waypoint, 0, len(e.Waypoints))
	for _, w := range e.Waypoints {
		out = append(out, w.Waypoint())
	}
	return out
}

// FacingRad - начальный взгляд в радианах
func (e EnemySpec) FacingRad() float64 {
	return domain.Deg2Rad(e.Facing)
}

// TileSize - размер агента (и клетки сетки обнаружения)
func (f *File) TileSize() float64 {
	if f.AgentSize > 0 {
		return f.AgentSize
	}
	return domain.DefaultAgentSize
}

// Validate проверяет структурную целостность уровня
func (f *File) Validate() error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, errors.New("level name is required"))
	}
	for i, o := range f.Obstacles {
		if o.W <= 0 || o.H <= 0 {
			errs = append(errs, fmt.Errorf("obstacle %d has empty size", i))
		}
	}
	if f.inObstacle(f.Player.Spawn) {
		errs = append(errs, errors.New("player spawn is inside an obstacle"))
	}

	seen := make(map[string]bool, len(f.Enemies))
	for _, e := range f.Enemies {
		if e.ID == "" {
			errs = append(errs, errors.New("enemy without id"))
			continue
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("duplicate enemy id %q", e.ID))
		}
		seen[e.ID] = true
		if f.inObstacle(e.Spawn) {
			errs = append(errs, fmt.Errorf("enemy %q spawns inside an obstacle", e.ID))
		}
		for i, w := range e.Waypoints {
			if w.MoveDelay < 0 || w.RotationDelay < 0 || w.RotationSpeed < 0 {
				errs = append(errs, fmt.Errorf("enemy %q waypoint %d has negative timing", e.ID, i))
			}
		}
	}

	return errors.Join(errs...)
}

func (f *File) inObstacle(p domain.Vec2) bool {
	for _, o := range f.Obstacles {
		if o.Contains(p) {
			return true
		}
	}
	return false
}

// Parse читает уровень из YAML. Неизвестные поля - ошибка.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %q: %w", f.Name, err)
	}
	return &f, nil
}

// Load читает уровень с диска
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Marshal сериализует уровень обратно в YAML (для генератора)
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
