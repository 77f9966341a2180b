package status

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rberon/strmctl/internal/bus"
)

// State represents a daemon runtime state.
type State string

const (
	Booting    State = "BOOTING"
	Idle       State = "IDLE"
	Starting   State = "STARTING"
	Live       State = "LIVE"
	Degraded   State = "DEGRADED"
	Restarting State = "RESTARTING"
	Stopped    State = "STOPPED"
	Error      State = "ERROR"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Booting:    {Idle, Starting, Error},
	Idle:       {Starting, Error},
	Starting:   {Live, Stopped, Error},
	Live:       {Degraded, Restarting, Stopped, Error},
	Degraded:   {Live, Restarting, Stopped, Error},
	Restarting: {Starting, Stopped, Error},
	Stopped:    {Starting, Error},
	Error:      {Booting, Starting},
}

// Machine tracks and enforces daemon runtime state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	message string
	bus     *bus.Bus
}

// NewMachine creates a state machine starting in Booting.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{
		current: Booting,
		bus:     b,
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Message returns the human-readable note attached to the last
// transition, if any.
func (m *Machine) Message() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.message
}

// Transition attempts to move to a new state. Returns an error and
// leaves the state unchanged if the transition is not allowed.
func (m *Machine) Transition(to State, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := validTransitions[m.current]
	if !slices.Contains(allowed, to) {
		return fmt.Errorf("invalid transition from %s to %s", m.current, to)
	}
	from := m.current
	m.current = to
	m.message = message
	if m.bus != nil {
		m.bus.Emit(bus.KindSessionState, Change{
			From:    from,
			To:      to,
			Message: message,
		})
	}
	return nil
}

// Change is the payload for state change events.
type Change struct {
	From    State
	To      State
	Message string
}
