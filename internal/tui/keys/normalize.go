package keys

import "strings"

// Event is a raw keyboard input: a base key identifier plus modifier
// flags, independent of the terminal backend that produced it.
type Event struct {
	// Name is the key identifier, e.g. "a", "space", "escape". For a
	// bare modifier press it is the modifier's own name.
	Name  string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// modifierNames are key identifiers that are themselves modifiers. A
// press carrying only one of these has no base key and never resolves
// to a shortcut.
var modifierNames = map[string]struct{}{
	"ctrl":    {},
	"control": {},
	"meta":    {},
	"cmd":     {},
	"super":   {},
	"shift":   {},
	"alt":     {},
	"option":  {},
}

// primaryHeld reports whether the platform primary modifier is down:
// Command on Apple platforms, Control elsewhere.
func primaryHeld(ev Event) bool {
	if primaryIsMeta {
		return ev.Meta
	}
	return ev.Ctrl
}

// Normalize converts a raw event into its canonical combo string:
// [mod+][shift+][alt+]<key>, base key lowercased. The token order is a
// contract shared with the registry table. A bare modifier press yields
// a string with no base key, which by construction matches no registry
// entry. Normalize is a pure function of its input.
func Normalize(ev Event) string {
	var parts []string
	if primaryHeld(ev) {
		parts = append(parts, "mod")
	}
	if ev.Shift {
		parts = append(parts, "shift")
	}
	if ev.Alt {
		parts = append(parts, "alt")
	}
	name := strings.ToLower(ev.Name)
	if _, isMod := modifierNames[name]; !isMod && name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, "+")
}
