package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows - строки под картой: статус и последние логи
const hudRows = 5

// Renderer рисует Frame на экране tcell
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// ViewSize - размер окна карты в клетках (экран без HUD)
func (r *Renderer) ViewSize() (int, int) {
	w, h := r.screen.Size()
	return w, max(1, h-hudRows)
}

// Draw выводит кадр и последние логи
func (r *Renderer) Draw(f Frame, logs []string) {
	r.screen.Clear()
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g := f.At(x, y)
			if g == 0 {
				continue
			}
			style := bg.Foreground(tcell.NewHexColor(int32(g.Color())))
			r.screen.SetContent(x, y, rune(g.Char()), nil, style)
		}
	}

	r.drawText(0, f.Height, f.Status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	// Последние логи, самые новые снизу
	start := max(0, len(logs)-(hudRows-1))
	for i, line := range logs[start:] {
		r.drawText(0, f.Height+1+i, line, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}

	r.screen.Show()
}

// drawText пишет строку с учетом ширины символов и обрезает по краю экрана
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	sw, _ := r.screen.Size()
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > sw {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}
