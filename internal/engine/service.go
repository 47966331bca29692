package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"ursa-server/internal/config"
	"ursa-server/internal/domain"
	"ursa-server/internal/engine/handlers"
	"ursa-server/internal/engine/handlers/actions"
	"ursa-server/internal/engine/handlers/admin"
	"ursa-server/internal/network"
	"ursa-server/pkg/api"
	"ursa-server/pkg/level"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameService держит запущенные уровни и маршрутизирует команды клиентов
type GameService struct {
	Config   Config
	Profiles config.Profiles
	Hub      *network.Broadcaster

	mu        sync.RWMutex
	instances map[string]*Instance
}

func NewService(cfg Config, profiles config.Profiles, hub *network.Broadcaster) *GameService {
	return &GameService{
		Config:    cfg,
		Profiles:  profiles,
		Hub:       hub,
		instances: make(map[string]*Instance),
	}
}

// defaultHandlers - таблица действий, общая для живых и безголовых инстансов
func defaultHandlers() map[domain.ActionType]handlers.HandlerFunc {
	return map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:  handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionMove:  handlers.WithPayload(actions.HandleMove),
		domain.ActionRetry: handlers.WithEmptyPayload(actions.HandleRetry),
		domain.ActionStun:  handlers.WithPayload(admin.HandleStun),
	}
}

// AddLevel создает инстанс уровня. Имя уровня должно быть уникальным.
func (s *GameService) AddLevel(file *level.File) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[file.Name]; ok {
		return nil, fmt.Errorf("level %q already loaded", file.Name)
	}

	inst, err := NewInstance(file, s.Profiles, s.Config.Seed)
	if err != nil {
		return nil, err
	}
	inst.Hub = s.Hub
	s.instances[file.Name] = inst
	return inst, nil
}

// Start запускает цикл каждого уровня в своей горутине
func (s *GameService) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.instances {
		go inst.Run(ctx, s.Config.TickInterval())
	}
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token уже проверен транспортом, Level выбран при логине.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		return fmt.Errorf("unknown action: %s", externalCmd.Action)
	}

	inst := s.Instance(externalCmd.Level)
	if inst == nil {
		return fmt.Errorf("unknown level: %s", externalCmd.Level)
	}

	select {
	case inst.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
		return nil
	default:
		logger.Log.WithFields(logrus.Fields{
			"level":  externalCmd.Level,
			"action": actionType.String(),
		}).Warn("Command queue full, dropping")
		return fmt.Errorf("level %s is busy", externalCmd.Level)
	}
}

// Instance возвращает уровень по имени или nil
func (s *GameService) Instance(name string) *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.instances[name]
}

// DefaultLevel - имя уровня для клиентов, которые не выбрали уровень
func (s *GameService) DefaultLevel() string {
	names := s.LevelNames()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// LevelNames возвращает имена уровней в алфавитном порядке
func (s *GameService) LevelNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.instances))
	for name := range s.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Replays возвращает записи всех уровней (для сохранения при остановке)
func (s *GameService) Replays() []domain.ReplaySession {
	var out []domain.ReplaySession
	for _, name := range s.LevelNames() {
		out = append(out, s.Instance(name).SessionReplay())
	}
	return out
}
