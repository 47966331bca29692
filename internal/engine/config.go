package engine

import (
	"time"
	"ursa-server/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Агент N уровня получает Seed + N + 1.
	Seed     int64
	TickRate int // тиков в секунду

	LevelPath    string // YAML уровня, пусто - уровень генерируется
	ProfilesPath string // YAML профилей сложности, пусто - только "normal"
	ReplayDir    string
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:      time.Now().UnixNano(),
		TickRate:  domain.DefaultTickRate,
		ReplayDir: "replays",
	}
}

// TickInterval - длительность одного тика
func (c Config) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = domain.DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}
