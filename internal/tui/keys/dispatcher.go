package keys

import "sync"

// HandlerMap maps actions to zero-argument callbacks. It is owned by
// the caller and replaceable while the dispatcher stays mounted.
type HandlerMap map[Action]func()

// Focus classifies the widget holding input focus when a key event
// arrives. Only text-entry-capable widgets suppress dispatch; other
// focused controls (buttons, tables) dispatch normally.
type Focus int

const (
	// FocusNone means no widget claims text input.
	FocusNone Focus = iota
	// FocusText means a text-input-capable widget is focused (single
	// line input, multi-line input, or selection control).
	FocusText
	// FocusControl means a non-text control is focused.
	FocusControl
)

// Source delivers keyboard events to a mounted dispatcher. Subscribe
// installs the capture function and returns its teardown; the capture
// function reports whether the event was consumed, in which case the
// source must suppress the event's default handling and propagation.
type Source interface {
	Subscribe(capture func(ev Event, focus Focus) bool) (cancel func())
}

// Dispatcher routes key events to the current handler map. It starts
// unmounted; Mount creates exactly one subscription on the source and
// Unmount tears it down. SetHandlers and SetEnabled reconfigure the
// mounted dispatcher in place without resubscribing.
type Dispatcher struct {
	mu       sync.Mutex
	enabled  bool
	handlers HandlerMap
	cancel   func()
}

// NewDispatcher creates an unmounted, enabled dispatcher with no
// handlers installed.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{enabled: true}
}

// Mount subscribes the dispatcher to the source. Mounting an already
// mounted dispatcher is a no-op; the existing subscription is kept.
func (d *Dispatcher) Mount(src Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	d.cancel = src.Subscribe(d.dispatch)
}

// Unmount tears down the subscription. Safe to call when unmounted.
func (d *Dispatcher) Unmount() {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Mounted reports whether a subscription is active.
func (d *Dispatcher) Mounted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// SetEnabled toggles dispatch without touching the subscription.
func (d *Dispatcher) SetEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

// SetHandlers replaces the handler map without resubscribing; the next
// event observes the new map.
func (d *Dispatcher) SetHandlers(handlers HandlerMap) {
	d.mu.Lock()
	d.handlers = handlers
	d.mu.Unlock()
}

// dispatch is the per-event path. Every miss (disabled, focus
// suppression, unknown combo, no handler) is a silent no-op: shortcut
// misses are routine, not exceptional. The handler runs synchronously
// on the goroutine that delivered the event, and the return value
// tells the source whether to suppress the event.
func (d *Dispatcher) dispatch(ev Event, focus Focus) bool {
	d.mu.Lock()
	enabled := d.enabled
	handlers := d.handlers
	d.mu.Unlock()

	if !enabled {
		return false
	}

	combo := Normalize(ev)

	// Typing into a field must never trigger shortcuts, except the
	// universal escape-to-blur affordance.
	if focus == FocusText && combo != "escape" {
		return false
	}

	sc, ok := Lookup(combo)
	if !ok {
		return false
	}
	handler, ok := handlers[sc.Action]
	if !ok {
		return false
	}
	handler()
	return true
}
