package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"ursa-server/internal/agent"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
	"ursa-server/internal/engine"
	"ursa-server/internal/infrastructure/storage"
	"ursa-server/internal/network"
	"ursa-server/internal/server"
	"ursa-server/internal/version"
	"ursa-server/pkg/level"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	var seed int64
	var replayPath string
	var withBot bool
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Initial world seed (0 for random)")
	flag.StringVar(&cfg.LevelPath, "level", "", "Path to level YAML (empty: generate one)")
	flag.StringVar(&cfg.ProfilesPath, "profiles", "", "Path to difficulty profiles YAML")
	flag.StringVar(&cfg.ReplayDir, "replay-dir", cfg.ReplayDir, "Directory for .urrp replays")
	flag.StringVar(&replayPath, "replay", "", "Path to .urrp replay file to simulate")
	flag.BoolVar(&withBot, "bot", false, "Run a route-following bot on the level")
	flag.Parse()

	logger.Log.Info("Starting Ursa...")
	logger.Log.Info(version.String())

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	profiles, err := config.LoadProfiles(cfg.ProfilesPath)
	if err != nil {
		logger.Log.Fatal("Failed to load profiles: ", err)
	}

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		if err := runReplay(replayPath, cfg, profiles); err != nil {
			logger.Log.Fatal("Replay failed: ", err)
		}
		return // Выходим после симуляции
	}

	file, err := loadLevel(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to load level: ", err)
	}

	port := os.Getenv("URSA_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg, profiles, network.NewBroadcaster())
	if _, err := gameService.AddLevel(file); err != nil {
		logger.Log.Fatal("Failed to build level: ", err)
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService.Start(ctx)

	if withBot {
		bot := agent.NewBot("bot-1", file.Name, botRoute(file), gameService)
		go bot.Run(ctx)
	}

	// 3. Запуск сервера
	srv := server.New(gameService, port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.Error("Server error: ", err)
	}

	logger.Log.Info("Shutting down...")

	// Сохраняем записи всех уровней
	saveReplays(cfg.ReplayDir, gameService.Replays())

	logger.Log.Info("Done.")
}

// loadLevel читает уровень из файла или генерирует его из сида
func loadLevel(cfg engine.Config) (*level.File, error) {
	if cfg.LevelPath != "" {
		return level.Load(cfg.LevelPath)
	}

	logger.Log.Info("🏗 No level given, generating one")
	return level.NewBuilder("generated", rand.New(rand.NewSource(cfg.Seed))).
		WithLookScripts().
		WithRooms(8).
		WithGuards(3).
		Build()
}

// runReplay проигрывает запись без сети и печатает итог
func runReplay(path string, cfg engine.Config, profiles config.Profiles) error {
	session, err := storage.LoadFile(path)
	if err != nil {
		return err
	}

	// Без -level уровень генерируется из сида записи, как в живом запуске
	if cfg.LevelPath == "" {
		cfg.Seed = session.Seed
	}
	file, err := loadLevel(cfg)
	if err != nil {
		return err
	}

	inst, err := engine.Simulate(file, profiles, session)
	if err != nil {
		return err
	}

	sum := inst.Summary()
	logger.Log.WithFields(logrus.Fields{
		"level":   sum.Level,
		"ticks":   sum.Tick,
		"actions": sum.Actions,
		"caught":  sum.Caught,
	}).Info("Replay finished")

	for _, a := range inst.DebugAgents() {
		logger.Log.WithFields(logrus.Fields{
			"agent":    a.ID,
			"state":    a.Record.State.String(),
			"detected": a.TimesDetected,
		}).Info("Agent final state")
	}
	return nil
}

func saveReplays(dir string, sessions []domain.ReplaySession) {
	svc, err := storage.NewReplayService(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Replay storage unavailable")
		return
	}
	for i := range sessions {
		path, err := svc.Save(&sessions[i])
		if err != nil {
			logger.Log.WithError(err).WithField("level", sessions[i].LevelName).Error("Failed to save replay")
			continue
		}
		logger.Log.WithField("path", path).Info("💾 Replay saved")
	}
}

// botRoute - маршрут бота: точка старта игрока и все точки патрулей
func botRoute(file *level.File) []domain.Vec2 {
	route := []domain.Vec2{file.Player.Spawn}
	for _, e := range file.Enemies {
		for _, wp := range e.Waypoints {
			route = append(route, domain.Vec2{X: wp.X, Y: wp.Y})
		}
	}
	if len(route) == 1 {
		for _, e := range file.Enemies {
			route = append(route, e.Spawn)
		}
	}
	return route
}
