package keys

import "strings"

// keyLabels maps base-key tokens to display names.
var keyLabels = map[string]string{
	"space":     "Space",
	"escape":    "Esc",
	"enter":     "Enter",
	"delete":    "Del",
	"backspace": "Bksp",
	"tab":       "Tab",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"pageup":    "PgUp",
	"pagedown":  "PgDn",
	"home":      "Home",
	"end":       "End",
	"insert":    "Ins",
}

// Format renders a canonical combo string as a human-readable label
// using the platform's modifier notation, e.g. "mod+shift+d" becomes
// "⌘⇧D" on macOS and "Ctrl+Shift+D" elsewhere. Display only; the
// canonical string stays the lookup key.
func Format(combo string) string {
	parts := strings.Split(combo, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "mod":
			out = append(out, modLabel)
		case "shift":
			out = append(out, shiftLabel)
		case "alt":
			out = append(out, altLabel)
		default:
			out = append(out, keyLabel(p))
		}
	}
	return strings.Join(out, labelSep)
}

func keyLabel(key string) string {
	if label, ok := keyLabels[key]; ok {
		return label
	}
	if len(key) == 1 {
		return strings.ToUpper(key)
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
