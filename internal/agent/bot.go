package agent

import (
	"context"
	"encoding/json"
	"ursa-server/internal/domain"
	"ursa-server/internal/engine"
	"ursa-server/internal/systems"
	"ursa-server/pkg/api"
	"ursa-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	// arriveDist - на таком расстоянии точка маршрута считается достигнутой
	arriveDist = 8.0
	// dirEpsilon - меньшие изменения направления не отправляются
	dirEpsilon = 0.05
	// botSearchCap - бот видит всю карту, лимит поиска щедрее, чем у охраны
	botSearchCap = 4000
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подписывается на уровень так же, как обычный клиент, получает снимки
// и ведет игрока по замкнутому маршруту. Пойманный бот шлет RETRY.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе сервера, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, отправка INIT, чтение Inbox.
//  3. На каждый снимок вызывается decide, команда (если есть) уходит в сервис.
type Bot struct {
	SessionID string
	Level     string
	Service   *engine.GameService // Прямая ссылка на движок (для простоты в этом проекте)
	Inbox     chan api.Snapshot

	Route []domain.Vec2

	grid     *systems.DetectionGrid // Карта из INIT
	scratch  systems.SearchScratch
	cursor   int
	lastDir  domain.Vec2
	retrying bool

	log *logrus.Entry
}

func NewBot(sessionID, level string, route []domain.Vec2, service *engine.GameService) *Bot {
	b := newBot(sessionID, level, route)
	b.Service = service
	// Бот регистрируется в хабе как обычный клиент и получает свой канал для обновлений.
	b.Inbox = service.Hub.Register(sessionID, level)
	return b
}

func newBot(sessionID, level string, route []domain.Vec2) *Bot {
	return &Bot{
		SessionID: sessionID,
		Level:     level,
		Route:     route,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"session":   sessionID,
		}),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.SessionID)

	b.log.WithField("route_len", len(b.Route)).Info("Bot started")
	b.send(api.ClientCommand{Action: domain.ActionInit.String()})

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return
		case snap, ok := <-b.Inbox:
			if !ok {
				return
			}
			if cmd := b.decide(snap); cmd != nil {
				b.send(*cmd)
			}
		}
	}
}

// decide - мозг бота. Команда или nil, если менять ничего не нужно.
func (b *Bot) decide(snap api.Snapshot) *api.ClientCommand {
	// 1. Карта приходит только в INIT
	if snap.Grid != nil {
		g := snap.Grid
		b.grid = systems.NewBlockedGrid(g.Width, g.Height, g.TileSize, g.Origin, g.Blocked)
	}

	// 2. Пойман - перезапуск (один раз на поимку)
	if snap.Caught {
		if b.retrying {
			return nil
		}
		b.retrying = true
		b.cursor = 0
		b.lastDir = domain.Vec2{}
		return &api.ClientCommand{Action: domain.ActionRetry.String()}
	}
	b.retrying = false

	if len(b.Route) == 0 {
		return nil
	}

	// 3. Следующая точка маршрута
	pos := snap.Player.Pos
	if pos.DistanceTo(b.Route[b.cursor]) <= arriveDist {
		b.cursor = (b.cursor + 1) % len(b.Route)
	}
	target := b.Route[b.cursor]

	// 4. Обход стен по сетке
	step := target
	if b.grid != nil {
		path, err := b.grid.Search(b.grid.WorldToTile(pos), b.grid.WorldToTile(target), botSearchCap, &b.scratch)
		if err == nil && len(path) > 0 {
			step = b.grid.TileCenter(path[0])
		}
	}

	dir := step.Sub(pos).Normalize()
	if dir.Sub(b.lastDir).Len() < dirEpsilon {
		return nil
	}
	b.lastDir = dir

	payload, err := json.Marshal(api.MovePayload{Dx: dir.X, Dy: dir.Y})
	if err != nil {
		b.log.WithError(err).Error("Error marshalling payload")
		return nil
	}
	return &api.ClientCommand{Action: domain.ActionMove.String(), Payload: payload}
}

// send дописывает сессию и уровень и передает команду сервису
func (b *Bot) send(cmd api.ClientCommand) {
	cmd.Token = b.SessionID
	cmd.Level = b.Level
	if err := b.Service.ProcessCommand(cmd); err != nil {
		b.log.WithError(err).Warn("Command dropped")
	}
}
