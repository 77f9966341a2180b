package status

import (
	"testing"

	"github.com/rberon/strmctl/internal/bus"
)

func TestInitialState(t *testing.T) {
	m := NewMachine(nil)
	if m.Current() != Booting {
		t.Errorf("initial state = %s, want BOOTING", m.Current())
	}
}

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{Booting, Idle},
		{Booting, Starting},
		{Booting, Error},
		{Idle, Starting},
		{Starting, Live},
		{Live, Degraded},
		{Live, Restarting},
		{Degraded, Live},
		{Restarting, Starting},
		{Stopped, Starting},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			m := NewMachine(nil)
			walkTo(t, m, tt.from)
			if err := m.Transition(tt.to, ""); err != nil {
				t.Errorf("Transition(%s -> %s) error = %v", tt.from, tt.to, err)
			}
			if m.Current() != tt.to {
				t.Errorf("state = %s, want %s", m.Current(), tt.to)
			}
		})
	}
}

func TestInvalidTransition(t *testing.T) {
	m := NewMachine(nil)
	if err := m.Transition(Live, ""); err == nil {
		t.Error("Transition(BOOTING -> LIVE) should fail")
	}
	if m.Current() != Booting {
		t.Errorf("state changed on rejected transition: %s", m.Current())
	}
}

func TestTransitionEmitsEvent(t *testing.T) {
	b := bus.New()
	ch, unsub := b.Subscribe("session.", 10)
	defer unsub()

	m := NewMachine(b)
	if err := m.Transition(Starting, "autostart"); err != nil {
		t.Fatal(err)
	}

	evt := <-ch
	if evt.Kind != bus.KindSessionState {
		t.Errorf("event kind = %q, want %q", evt.Kind, bus.KindSessionState)
	}
	change, ok := evt.Payload.(Change)
	if !ok {
		t.Fatalf("payload type = %T, want Change", evt.Payload)
	}
	if change.From != Booting || change.To != Starting {
		t.Errorf("change = %v -> %v, want BOOTING -> STARTING", change.From, change.To)
	}
	if change.Message != "autostart" {
		t.Errorf("change message = %q, want autostart", change.Message)
	}
}

// TestAutostartLifecycle walks the normal boot path:
// BOOTING → STARTING → LIVE
func TestAutostartLifecycle(t *testing.T) {
	m := NewMachine(nil)
	for _, s := range []State{Starting, Live} {
		if err := m.Transition(s, ""); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
	}
	if m.Current() != Live {
		t.Errorf("final state = %s, want LIVE", m.Current())
	}
}

// TestCrashRestartCycle verifies the supervisor's restart loop:
// LIVE → RESTARTING → STARTING → LIVE
func TestCrashRestartCycle(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Live)

	for _, s := range []State{Restarting, Starting, Live} {
		if err := m.Transition(s, ""); err != nil {
			t.Fatalf("Transition to %s: %v (current: %s)", s, err, m.Current())
		}
	}
	if m.Current() != Live {
		t.Errorf("final state = %s, want LIVE", m.Current())
	}
}

// TestDegradedRecovery verifies LIVE → DEGRADED → LIVE when the stats
// poller loses and regains the server API.
func TestDegradedRecovery(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Live)

	if err := m.Transition(Degraded, "api unreachable"); err != nil {
		t.Fatal(err)
	}
	if m.Message() != "api unreachable" {
		t.Errorf("Message() = %q", m.Message())
	}
	if err := m.Transition(Live, ""); err != nil {
		t.Fatal(err)
	}
}

// TestStopFromLive verifies a manual stop lands in STOPPED and can be
// started again.
func TestStopFromLive(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Live)

	if err := m.Transition(Stopped, "manual stop"); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(Starting, ""); err != nil {
		t.Fatalf("STOPPED -> STARTING: %v", err)
	}
}

// TestStoppedCannotJumpToLive ensures STOPPED must go through STARTING.
func TestStoppedCannotJumpToLive(t *testing.T) {
	m := NewMachine(nil)
	walkTo(t, m, Stopped)

	if err := m.Transition(Live, ""); err == nil {
		t.Fatal("Transition(STOPPED -> LIVE) should fail; must go through STARTING")
	}
	if m.Current() != Stopped {
		t.Errorf("state = %s, want STOPPED (should not have changed)", m.Current())
	}
}

// walkTo is a helper that transitions the machine to a target state.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	paths := map[State][]State{
		Booting:    {},
		Idle:       {Idle},
		Starting:   {Starting},
		Live:       {Starting, Live},
		Degraded:   {Starting, Live, Degraded},
		Restarting: {Starting, Live, Restarting},
		Stopped:    {Starting, Live, Stopped},
		Error:      {Error},
	}
	for _, s := range paths[target] {
		if err := m.Transition(s, ""); err != nil {
			t.Fatalf("walkTo(%s): %v", target, err)
		}
	}
}
