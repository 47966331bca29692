package api

import (
	"math"
	"testing"
)

func TestMovePayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       MovePayload
		wantErr bool
	}{
		{"Stop", MovePayload{}, false},
		{"Axis", MovePayload{Dx: 1}, false},
		{"Diagonal unit", MovePayload{Dx: math.Sqrt2 / 2, Dy: -math.Sqrt2 / 2}, false},
		{"Too long", MovePayload{Dx: 1, Dy: 1}, true},
		{"NaN", MovePayload{Dx: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStunPayload_Validate(t *testing.T) {
	if err := (StunPayload{AgentID: "guard-1", Ticks: 30}).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := (StunPayload{Ticks: 30}).Validate(); err == nil {
		t.Error("Missing agent id should fail")
	}
	if err := (StunPayload{AgentID: "g", Ticks: MaxStunTicks + 1}).Validate(); err == nil {
		t.Error("Too long stun should fail")
	}
}
