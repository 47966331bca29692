package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Режимы навигации агента
const (
	NavigationDirect = "direct" // прямое руление к цели
	NavigationGrid   = "grid"   // ограниченный BFS по сетке обнаружения
)

// Profile - именованные пороги поведения врага (профиль сложности).
// Время в тиках, расстояния в пикселях, углы в градусах.
type Profile struct {
	// Таймеры автомата
	SpawnGrace       int `yaml:"spawn_grace" json:"spawn_grace"`
	ConfuseTime      int `yaml:"confuse_time" json:"confuse_time"`
	ChaseMemory      int `yaml:"chase_memory" json:"chase_memory"`
	DetectionDelay   int `yaml:"detection_delay" json:"detection_delay"`
	CollisionConfirm int `yaml:"collision_confirm" json:"collision_confirm"`
	LookAroundTicks  int `yaml:"look_around_ticks" json:"look_around_ticks"`

	// Радиусы
	NearRadius       float64 `yaml:"near_radius" json:"near_radius"`
	ChaseRadius      float64 `yaml:"chase_radius" json:"chase_radius"`
	CaptureRadius    float64 `yaml:"capture_radius" json:"capture_radius"`
	ArrivalTolerance float64 `yaml:"arrival_tolerance" json:"arrival_tolerance"`

	// Скорости (пикс/тик, град/тик)
	WanderSpeed     float64 `yaml:"wander_speed" json:"wander_speed"`
	ChaseSpeed      float64 `yaml:"chase_speed" json:"chase_speed"`
	AttackSpeed     float64 `yaml:"attack_speed" json:"attack_speed"`
	RotationSpeed   float64 `yaml:"rotation_speed_deg" json:"rotation_speed_deg"`
	LookAroundSpeed float64 `yaml:"look_around_speed_deg" json:"look_around_speed_deg"`
	LookAroundRange float64 `yaml:"look_around_range_deg" json:"look_around_range_deg"`

	// Восприятие
	SightRange         float64 `yaml:"sight_range" json:"sight_range"`
	SightHalfAngle     float64 `yaml:"sight_half_angle_deg" json:"sight_half_angle_deg"`
	NoiseRadius        float64 `yaml:"noise_radius" json:"noise_radius"`
	AdaptiveRangeScale float64 `yaml:"adaptive_range_scale" json:"adaptive_range_scale"`

	// Память о наблюдениях
	MemoryCapacity  int `yaml:"memory_capacity" json:"memory_capacity"`
	AdaptiveWindow  int `yaml:"adaptive_window" json:"adaptive_window"`
	MinPatrolChange int `yaml:"min_patrol_change" json:"min_patrol_change"`

	// Оглушение
	StunSpinRate     float64 `yaml:"stun_spin_rate_deg" json:"stun_spin_rate_deg"`
	StunImpulseEvery int     `yaml:"stun_impulse_every" json:"stun_impulse_every"`
	StunImpulse      float64 `yaml:"stun_impulse" json:"stun_impulse"`

	// Навигация
	Navigation        string  `yaml:"navigation" json:"navigation" jsonschema:"enum=direct,enum=grid"`
	SearchFrontierCap int     `yaml:"search_frontier_cap" json:"search_frontier_cap"`
	TileScale         float64 `yaml:"tile_scale" json:"tile_scale"`
}

// DefaultProfile - профиль "normal"
func DefaultProfile() Profile {
	return Profile{
		SpawnGrace:       30,
		ConfuseTime:      12,
		ChaseMemory:      80,
		DetectionDelay:   10,
		CollisionConfirm: 3,
		LookAroundTicks:  90,

		NearRadius:       48,
		ChaseRadius:      160,
		CaptureRadius:    20,
		ArrivalTolerance: 4,

		WanderSpeed:     1.2,
		ChaseSpeed:      2.2,
		AttackSpeed:     2.8,
		RotationSpeed:   4,
		LookAroundSpeed: 3,
		LookAroundRange: 60,

		SightRange:         220,
		SightHalfAngle:     40,
		NoiseRadius:        40,
		AdaptiveRangeScale: 1.5,

		MemoryCapacity:  5,
		AdaptiveWindow:  600,
		MinPatrolChange: 3,

		StunSpinRate:     20,
		StunImpulseEvery: 15,
		StunImpulse:      1.5,

		Navigation:        NavigationDirect,
		SearchFrontierCap: 800,
		TileScale:         1.0,
	}
}

// Validate проверяет согласованность порогов
func (p Profile) Validate() error {
	var errs []error

	positiveInts := []struct {
		name string
		v    int
	}{
		{"confuse_time", p.ConfuseTime},
		{"detection_delay", p.DetectionDelay},
		{"collision_confirm", p.CollisionConfirm},
		{"memory_capacity", p.MemoryCapacity},
		{"stun_impulse_every", p.StunImpulseEvery},
		{"search_frontier_cap", p.SearchFrontierCap},
	}
	for _, f := range positiveInts {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", f.name, f.v))
		}
	}

	if p.SpawnGrace < 0 || p.ChaseMemory < 0 || p.LookAroundTicks < 0 || p.AdaptiveWindow < 0 || p.MinPatrolChange < 0 {
		errs = append(errs, errors.New("tick thresholds must not be negative"))
	}
	if p.CaptureRadius <= 0 || p.SightRange <= 0 || p.ArrivalTolerance <= 0 {
		errs = append(errs, errors.New("capture_radius, sight_range and arrival_tolerance must be positive"))
	}
	if p.CaptureRadius > p.ChaseRadius {
		errs = append(errs, fmt.Errorf("capture_radius (%.1f) exceeds chase_radius (%.1f)", p.CaptureRadius, p.ChaseRadius))
	}
	if p.SightHalfAngle <= 0 || p.SightHalfAngle > 180 {
		errs = append(errs, fmt.Errorf("sight_half_angle_deg out of range: %.1f", p.SightHalfAngle))
	}
	if p.TileScale <= 0 {
		errs = append(errs, errors.New("tile_scale must be positive"))
	}
	if p.Navigation != NavigationDirect && p.Navigation != NavigationGrid {
		errs = append(errs, fmt.Errorf("unknown navigation %q", p.Navigation))
	}

	return errors.Join(errs...)
}

// Overrides - частичные переопределения профиля из файла уровня (ключи как в YAML)
type Overrides map[string]any

// Merge накладывает переопределения поверх профиля.
// Неизвестный ключ - ошибка.
func (p Profile) Merge(overrides Overrides) (Profile, error) {
	if len(overrides) == 0 {
		return p, nil
	}

	raw, err := yaml.Marshal(overrides)
	if err != nil {
		return p, fmt.Errorf("marshal overrides: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("apply overrides: %w", err)
	}
	return p, nil
}

// --- Производные значения в радианах ---

func (p Profile) RotationSpeedRad() float64   { return p.RotationSpeed * math.Pi / 180 }
func (p Profile) LookAroundSpeedRad() float64 { return p.LookAroundSpeed * math.Pi / 180 }
func (p Profile) LookAroundRangeRad() float64 { return p.LookAroundRange * math.Pi / 180 }
func (p Profile) SightHalfAngleRad() float64  { return p.SightHalfAngle * math.Pi / 180 }
func (p Profile) StunSpinRateRad() float64    { return p.StunSpinRate * math.Pi / 180 }

// --- Загрузка набора профилей ---

// profileFile - формат файла профилей:
//
//	profiles:
//	  easy:
//	    detection_delay: 20
//	  hard:
//	    sight_range: 300
type profileFile struct {
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// Profiles - набор именованных профилей
type Profiles map[string]Profile

// Get возвращает профиль по имени. Пустое имя - DefaultProfile.
func (ps Profiles) Get(name string) (Profile, error) {
	if name == "" {
		if p, ok := ps["normal"]; ok {
			return p, nil
		}
		return DefaultProfile(), nil
	}
	p, ok := ps[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}

// ParseProfiles читает YAML. Каждый профиль накладывается на DefaultProfile.
func ParseProfiles(data []byte) (Profiles, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	result := make(Profiles, len(file.Profiles)+1)
	result["normal"] = DefaultProfile()

	for name, node := range file.Profiles {
		p := DefaultProfile()
		if err := node.Decode(&p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		result[name] = p
	}
	return result, nil
}

// LoadProfiles читает файл профилей. Пустой путь - только DefaultProfile.
func LoadProfiles(path string) (Profiles, error) {
	if path == "" {
		return Profiles{"normal": DefaultProfile()}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	return ParseProfiles(data)
}
