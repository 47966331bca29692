package systems

import (
	"testing"
	"ursa-server/internal/config"
	"ursa-server/internal/core/types/enums"
)

func TestTransition_SpawnGrace(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateSpawn}

	for i := 1; i < p.SpawnGrace; i++ {
		r = Transition(r, Signals{Distance: 500}, p)
		if r.State != enums.StateSpawn {
			t.Fatalf("Tick %d: left SPAWN during grace, got %v", r.Tick, r.State)
		}
	}

	r = Transition(r, Signals{Distance: 500}, p)
	if r.State != enums.StateWander {
		t.Errorf("After grace expected WANDER, got %v", r.State)
	}
}

func TestTransition_SpawnDetected(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateSpawn, Tick: p.SpawnGrace, DetectedTicks: p.DetectionDelay - 1}

	r = Transition(r, Signals{Alerted: true, Spotted: true}, p)
	if r.State != enums.StateConfused {
		t.Fatalf("Expected CONFUSED, got %v", r.State)
	}
	if r.ConfusionTicks != 1 {
		t.Errorf("Confusion counter on entry = %d, want 1", r.ConfusionTicks)
	}
}

func TestTransition_Table(t *testing.T) {
	p := config.DefaultProfile()
	far := p.ChaseRadius + 100

	tests := []struct {
		name   string
		in     Record
		sig    Signals
		expect enums.BehaviorState
	}{
		{"Wander to Looking on script", Record{State: enums.StateWander}, Signals{Rotating: true, Distance: far}, enums.StateLooking},
		{"Wander detected", Record{State: enums.StateWander, DetectedTicks: p.DetectionDelay}, Signals{Alerted: true, Distance: far}, enums.StateConfused},
		{"Wander stays", Record{State: enums.StateWander}, Signals{Distance: far}, enums.StateWander},
		{"Looking spotted", Record{State: enums.StateLooking}, Signals{Alerted: true, Spotted: true, Distance: far}, enums.StateChase},
		{"Looking script pending", Record{State: enums.StateLooking}, Signals{Rotating: true, Distance: far}, enums.StateLooking},
		{"Looking search pending", Record{State: enums.StateLooking, Searching: true}, Signals{Distance: far}, enums.StateLooking},
		{"Looking search done", Record{State: enums.StateLooking, Searching: true, LookTicks: p.LookAroundTicks}, Signals{Distance: far}, enums.StateWander},
		{"Looking nothing pending", Record{State: enums.StateLooking}, Signals{Distance: far}, enums.StateWander},
		{"Confused near", Record{State: enums.StateConfused, ConfusionTicks: 3}, Signals{Distance: p.NearRadius - 1}, enums.StateChase},
		{"Confused zero", Record{State: enums.StateConfused}, Signals{Alerted: true, Distance: far}, enums.StateLooking},
		{"Chase spotted", Record{State: enums.StateChase}, Signals{Alerted: true, Spotted: true, Distance: far}, enums.StateAttack},
		{"Chase in radius", Record{State: enums.StateChase}, Signals{Distance: p.ChaseRadius}, enums.StateChase},
		{"Chase memory expired", Record{State: enums.StateChase}, Signals{Distance: far, SinceDetection: p.ChaseMemory}, enums.StateConfused},
		{"Chase lost", Record{State: enums.StateChase}, Signals{Distance: far, SinceDetection: p.ChaseMemory - 1}, enums.StateLooking},
		{"Attack spotted", Record{State: enums.StateAttack, AttackTicks: 1}, Signals{Alerted: true, Spotted: true, Distance: far}, enums.StateAttack},
		{"Attack lost", Record{State: enums.StateAttack, AttackTicks: 4}, Signals{Distance: far}, enums.StateChase},
		{"Attack captured", Record{State: enums.StateAttack, CaptureTicks: p.CollisionConfirm - 1}, Signals{Distance: 1}, enums.StateWon},
		{"Won terminal", Record{State: enums.StateWon}, Signals{Distance: far}, enums.StateWon},
		{"Won ignores stun", Record{State: enums.StateWon}, Signals{Stunned: true}, enums.StateWon},
		{"Stun preempts chase", Record{State: enums.StateChase}, Signals{Stunned: true, Spotted: true}, enums.StateStunned},
		{"Stunned stays", Record{State: enums.StateStunned, StunTicks: 5}, Signals{Stunned: true}, enums.StateStunned},
		{"Stun recovery", Record{State: enums.StateStunned, StunTicks: 5}, Signals{Distance: far}, enums.StateSpawn},
		{"Unknown state", Record{State: enums.BehaviorState(200)}, Signals{}, enums.StateSpawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.in, tt.sig, p)
			if got.State != tt.expect {
				t.Errorf("Transition from %v = %v, want %v", tt.in.State, got.State, tt.expect)
			}
			if got.Tick != tt.in.Tick+1 {
				t.Errorf("Tick not advanced: %d", got.Tick)
			}
		})
	}
}

func TestTransition_ConfusedScenario(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateConfused, ConfusionTicks: 1}
	far := Signals{Alerted: true, Distance: p.ChaseRadius + 100}

	// Тревога держится: счетчик растет до порога
	for r.ConfusionTicks < p.ConfuseTime {
		r = Transition(r, far, p)
		if r.State != enums.StateConfused {
			t.Fatalf("Left CONFUSED early at counter %d", r.ConfusionTicks)
		}
	}
	if r.ConfusionTicks != 12 {
		t.Fatalf("Counter = %d, want 12", r.ConfusionTicks)
	}

	spotted := far
	spotted.Spotted = true
	if got := Transition(r, spotted, p); got.State != enums.StateChase {
		t.Errorf("Counter at threshold and spotted: got %v, want CHASE", got.State)
	}
	if got := Transition(r, far, p); got.State != enums.StateLooking {
		t.Errorf("Counter at threshold, not spotted: got %v, want LOOKING", got.State)
	}
}

func TestTransition_ConfusedDecay(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateConfused, ConfusionTicks: 1}
	quiet := Signals{Distance: p.ChaseRadius + 100}

	r = Transition(r, quiet, p)
	if r.State != enums.StateConfused || r.ConfusionTicks != 0 {
		t.Fatalf("Expected CONFUSED with counter 0, got %v/%d", r.State, r.ConfusionTicks)
	}

	r = Transition(r, quiet, p)
	if r.State != enums.StateLooking {
		t.Fatalf("Expected LOOKING, got %v", r.State)
	}
	if r.LookTicks != 0 || !r.Searching {
		t.Errorf("Look cycle not reset on re-entry: look=%d searching=%v", r.LookTicks, r.Searching)
	}
}

func TestTransition_StunRecoveryResetsCounters(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateAttack, Tick: 100, AttackTicks: 7, CaptureTicks: 1, DetectedTicks: 40}

	r = Transition(r, Signals{Stunned: true, Alerted: true}, p)
	r = Transition(r, Signals{Stunned: true, Alerted: true}, p)
	if r.StunTicks != 2 {
		t.Errorf("StunTicks = %d, want 2", r.StunTicks)
	}

	r = Transition(r, Signals{Distance: 500}, p)
	want := Record{State: enums.StateSpawn, Tick: 103}
	if r != want {
		t.Errorf("After recovery = %+v, want %+v", r, want)
	}

	// Тик уже за пределами grace: на следующем тике уходим в WANDER
	r = Transition(r, Signals{Distance: 500}, p)
	if r.State != enums.StateWander {
		t.Errorf("Expected WANDER after recovery, got %v", r.State)
	}
}

func TestTransition_CountersClamped(t *testing.T) {
	p := config.DefaultProfile()
	r := Record{State: enums.StateWon, Tick: maxCounter, DetectedTicks: maxCounter}

	r = Transition(r, Signals{Alerted: true}, p)
	if r.Tick != maxCounter || r.DetectedTicks != maxCounter {
		t.Errorf("Counters overflowed: %+v", r)
	}
}
