package types

import (
	"testing"
	"ursa-server/internal/core/types/enums"
)

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name      string
		colorRGB  uint32
		char      byte
		want      Glyph
		wantColor uint32
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041), 0xFFA500},
		{"black space", 0x000000, ' ', Glyph(0x00000020), 0x000000},
		{"color truncation (ignore alpha)", 0x12345678, 'x', Glyph(0x34567878), 0x345678},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF), 0x404040},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeGlyph(tt.colorRGB, tt.char)
			if got != tt.want {
				t.Fatalf("MakeGlyph() = 0x%08X, want 0x%08X", got, tt.want)
			}
			if got.Char() != tt.char {
				t.Errorf("Char() = 0x%02X, want 0x%02X", got.Char(), tt.char)
			}
			if got.Color() != tt.wantColor {
				t.Errorf("Color() = 0x%06X, want 0x%06X", got.Color(), tt.wantColor)
			}
		})
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		g    Glyph
		want string
	}{
		{MakeGlyph(0xFFA500, 'A'), "Glyph{char='A', color=#FFA500}"},
		{MakeGlyph(0xFFFFFF, '\n'), "Glyph{char='\\x0A', color=#FFFFFF}"},
		{MakeGlyph(0x654321, 0x7F), "Glyph{char='\\x7F', color=#654321}"},
	}

	for _, tt := range tests {
		if got := tt.g.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if got := MakeGlyph(0x010203, 'x').HexColor(); got != "#010203" {
		t.Errorf("HexColor() = %s, want #010203", got)
	}
}

func TestStateGlyph(t *testing.T) {
	// Каждое состояние различимо по символу
	seen := map[byte]enums.BehaviorState{}
	for s := enums.BehaviorState(0); int(s) < enums.StateCount; s++ {
		g := StateGlyph(s)
		if g.Char() == 0 {
			t.Fatalf("state %s has no glyph", s)
		}
		if prev, ok := seen[g.Char()]; ok {
			t.Errorf("states %s and %s share glyph %q", prev, s, g.Char())
		}
		seen[g.Char()] = s
	}

	if got := StateGlyph(enums.BehaviorState(200)).Char(); got != 'E' {
		t.Errorf("unknown state glyph = %q, want 'E'", got)
	}
}
