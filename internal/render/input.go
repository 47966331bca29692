package render

import (
	"encoding/json"
	"fmt"
	"ursa-server/pkg/api"

	"github.com/gdamore/tcell/v2"
)

// ViewerStunTicks - оглушение по цифровой клавише (2 секунды)
const ViewerStunTicks = 60

// KeyAction - что просмотрщик делает по клавише
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeySend
	KeyQuit
)

// KeyToCommand переводит клавишу в команду серверу.
// agents - id врагов по порядку, цифры 1-9 оглушают соответствующего.
func KeyToCommand(ev *tcell.EventKey, agents []string) (api.ClientCommand, KeyAction) {
	// Именованные клавиши
	switch ev.Key() {
	case tcell.KeyUp:
		return move(0, -1), KeySend
	case tcell.KeyDown:
		return move(0, 1), KeySend
	case tcell.KeyLeft:
		return move(-1, 0), KeySend
	case tcell.KeyRight:
		return move(1, 0), KeySend
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return api.ClientCommand{}, KeyQuit
	}

	r := ev.Rune()
	switch r {
	case 'w', 'W':
		return move(0, -1), KeySend
	case 's', 'S':
		return move(0, 1), KeySend
	case 'a', 'A':
		return move(-1, 0), KeySend
	case 'd', 'D':
		return move(1, 0), KeySend
	case ' ':
		return move(0, 0), KeySend
	case 'r', 'R':
		return api.ClientCommand{Action: "RETRY"}, KeySend
	case 'q', 'Q':
		return api.ClientCommand{}, KeyQuit
	}

	if r >= '1' && r <= '9' {
		idx := int(r - '1')
		if idx < len(agents) {
			payload := fmt.Sprintf(`{"agentId":%q,"ticks":%d}`, agents[idx], ViewerStunTicks)
			return api.ClientCommand{Action: "STUN", Payload: json.RawMessage(payload)}, KeySend
		}
	}
	return api.ClientCommand{}, KeyNone
}

func move(dx, dy float64) api.ClientCommand {
	payload, _ := json.Marshal(api.MovePayload{Dx: dx, Dy: dy})
	return api.ClientCommand{Action: "MOVE", Payload: payload}
}
