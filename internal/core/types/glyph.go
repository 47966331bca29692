package types

import (
	"fmt"
	"ursa-server/internal/core/types/enums"
)

// Glyph - символ карты с цветом, упакованный в uint32:
//
//	[0:8]  - ASCII символ
//	[8:32] - RGB цвет 0xRRGGBB
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph упаковывает цвет и символ. Лишние старшие биты цвета отбрасываются.
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color - цвет в формате 0xRRGGBB
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// String реализует fmt.Stringer: "Glyph{char='G', color=#FFA500}"
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})

	// Для непечатаемых символов показываем hex
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// HexColor возвращает цвет строкой "#RRGGBB" (для логов и веб-клиентов)
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}

// --- Палитра уровня ---

var (
	GlyphFloor    = MakeGlyph(0x303030, '.')
	GlyphWall     = MakeGlyph(0x808080, '#')
	GlyphPlayer   = MakeGlyph(0x22D3EE, '@')
	GlyphSighting = MakeGlyph(0xFACC15, '*') // запомненная позиция игрока
	GlyphWaypoint = MakeGlyph(0x4B5563, '+')
)

// stateGlyphs - вид врага в каждом состоянии. Индекс - BehaviorState.
var stateGlyphs = [enums.StateCount]Glyph{
	enums.StateSpawn:    MakeGlyph(0x9CA3AF, 's'),
	enums.StateWander:   MakeGlyph(0x22C55E, 'w'),
	enums.StateLooking:  MakeGlyph(0x84CC16, 'l'),
	enums.StateConfused: MakeGlyph(0xF59E0B, '?'),
	enums.StateChase:    MakeGlyph(0xF97316, 'C'),
	enums.StateAttack:   MakeGlyph(0xEF4444, 'A'),
	enums.StateWon:      MakeGlyph(0xDC2626, 'W'),
	enums.StateStunned:  MakeGlyph(0x8B5CF6, 'z'),
}

// StateGlyph возвращает символ врага для состояния. Неизвестное состояние - белый 'E'.
func StateGlyph(s enums.BehaviorState) Glyph {
	if int(s) < enums.StateCount {
		return stateGlyphs[s]
	}
	return MakeGlyph(0xFFFFFF, 'E')
}
