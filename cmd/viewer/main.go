package main

import (
	"flag"
	"fmt"
	"os"
	"ursa-server/internal/render"
	"ursa-server/pkg/api"
	"ursa-server/pkg/logger"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
)

// Терминальный клиент: подключается к серверу по WebSocket и рисует уровень
func main() {
	var addr, levelName, token string
	flag.StringVar(&addr, "addr", "ws://localhost:8080/ws", "server WebSocket URL")
	flag.StringVar(&levelName, "level", "", "level to join (empty: server default)")
	flag.StringVar(&token, "token", "", "session token (empty: server generates one)")
	flag.Parse()

	logger.Init()
	logger.Silence()

	if err := run(addr, levelName, token); err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, levelName, token string) error {
	// 1. Подключение и логин
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(api.ClientCommand{Token: token, Level: levelName, Action: "INIT"}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// 2. Экран
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	snaps := make(chan api.Snapshot, 8)
	go readLoop(conn, snaps)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	// 3. Цикл: снимки с сервера и клавиши пользователя
	r := render.NewRenderer(screen)
	v := &viewer{}
	draw := func() {
		w, h := r.ViewSize()
		r.Draw(v.frame(w, h), v.logs)
	}
	draw()

	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return fmt.Errorf("connection closed")
			}
			v.apply(snap)
			draw()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw()
			case *tcell.EventKey:
				cmd, act := render.KeyToCommand(ev, v.agentIDs())
				switch act {
				case render.KeyQuit:
					return nil
				case render.KeySend:
					if err := conn.WriteJSON(cmd); err != nil {
						return fmt.Errorf("send %s: %w", cmd.Action, err)
					}
				}
			}
		}
	}
}

// readLoop читает снимки, пока соединение живо
func readLoop(conn *websocket.Conn, out chan<- api.Snapshot) {
	defer close(out)
	for {
		var snap api.Snapshot
		if err := conn.ReadJSON(&snap); err != nil {
			logger.Log.WithError(err).Debug("viewer read stopped")
			return
		}
		out <- snap
	}
}
