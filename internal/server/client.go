package server

import (
	"net/http"
	"time"
	"ursa-server/internal/engine"
	"ursa-server/pkg/api"
	"ursa-server/pkg/logger"
	"ursa-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game      *engine.GameService
	Conn      *websocket.Conn
	Send      chan api.Snapshot
	SessionID string
	Level     string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.Snapshot, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	log := logger.Log.WithField("component", "ws_client")
	subscribed := false

	defer func() {
		if subscribed {
			c.Game.Hub.Unregister(c.SessionID)
			log.WithField("session", c.SessionID).Info("Client disconnected")
		} else {
			// Подписки нет, writePump ждет закрытия Send
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		log.WithError(err).Warn("Handshake failed")
		return
	}

	c.SessionID = loginCmd.Token
	if c.SessionID == "" {
		c.SessionID = utils.GenerateID()
	}

	// 2. ВЫБОР УРОВНЯ
	c.Level = loginCmd.Level
	if c.Level == "" {
		c.Level = c.Game.DefaultLevel()
	}
	if c.Game.Instance(c.Level) == nil {
		log.WithField("level", c.Level).Warn("Login to unknown level")
		return
	}

	log = log.WithFields(logrus.Fields{
		"session": c.SessionID,
		"level":   c.Level,
	})
	log.Info("Client logged in")

	// 3. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Game.Hub.Register(c.SessionID, c.Level)
	subscribed = true

	// Запускаем пересылку обновлений из Hub в writePump
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// Отправляем INIT (триггер первой отрисовки)
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.SessionID, Level: c.Level}); err != nil {
		log.WithError(err).Warn("INIT rejected")
	}

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WS Error: %v", err)
			}
			break
		}
		// Клиент не может подменить сессию или уровень
		cmd.Token = c.SessionID
		cmd.Level = c.Level
		if err := c.Game.ProcessCommand(cmd); err != nil {
			log.WithError(err).Warn("Command dropped")
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
