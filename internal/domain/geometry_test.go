package domain

import (
	"math"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	if _, ok := BoundingBox(nil); ok {
		t.Fatal("Empty list should not have a bounding box")
	}

	bb, ok := BoundingBox([]Rect{
		{X: 10, Y: 10, W: 5, H: 5},
		{X: -5, Y: 20, W: 10, H: 2},
	})
	if !ok {
		t.Fatal("Expected bounding box")
	}
	want := Rect{X: -5, Y: 10, W: 20, H: 12}
	if bb != want {
		t.Errorf("BoundingBox = %+v, want %+v", bb, want)
	}
}

func TestRect_Overlaps(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"Inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"Partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"Touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"Far", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r1.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRotateToward(t *testing.T) {
	// Шаг меньше разницы - поворачиваемся на шаг
	got, reached := RotateToward(0, math.Pi/2, 0.1)
	if reached || math.Abs(got-0.1) > 1e-9 {
		t.Errorf("RotateToward partial = (%v, %v), want (0.1, false)", got, reached)
	}

	// Кратчайший путь через -Pi
	got, _ = RotateToward(math.Pi-0.05, -math.Pi+0.05, 0.02)
	if got < math.Pi-0.05 && got > 0 {
		t.Errorf("Expected rotation across Pi boundary, got %v", got)
	}

	// Цель ближе шага - прилипаем к цели
	got, reached = RotateToward(1.0, 1.05, 0.1)
	if !reached || got != 1.05 {
		t.Errorf("RotateToward snap = (%v, %v), want (1.05, true)", got, reached)
	}
}

func TestTile_IsAdjacent(t *testing.T) {
	c := Tile{X: 5, Y: 5}
	if !c.IsAdjacent(Tile{X: 6, Y: 6}) {
		t.Error("Diagonal tile should be adjacent")
	}
	if c.IsAdjacent(c) {
		t.Error("Tile should not be adjacent to itself")
	}
	if c.IsAdjacent(Tile{X: 7, Y: 5}) {
		t.Error("Tile two steps away should not be adjacent")
	}
	if d := c.ChebyshevTo(Tile{X: 8, Y: 3}); d != 3 {
		t.Errorf("ChebyshevTo = %d, want 3", d)
	}
}
