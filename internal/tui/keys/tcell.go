package keys

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// specialNames maps tcell special keys to canonical base-key tokens.
// Entries here take precedence over the control-letter range, so Tab,
// Enter, Backspace and Escape keep their own names rather than the
// overlapping Ctrl-I/M/H/[ encodings.
var specialNames = map[tcell.Key]string{
	tcell.KeyEscape:     "escape",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pageup",
	tcell.KeyPgDn:       "pagedown",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
}

// FromTcell converts a tcell key event into a raw Event for the
// normalizer. Uppercase runes are folded to lowercase with the shift
// flag set, and control-letter key codes are folded to the letter with
// the ctrl flag set, so the canonical combo never depends on how the
// terminal encoded the press.
func FromTcell(ev *tcell.EventKey) Event {
	mods := ev.Modifiers()
	e := Event{
		Ctrl:  mods&tcell.ModCtrl != 0,
		Meta:  mods&tcell.ModMeta != 0,
		Shift: mods&tcell.ModShift != 0,
		Alt:   mods&tcell.ModAlt != 0,
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			e.Shift = true
			r = unicode.ToLower(r)
		}
		if r == ' ' {
			e.Name = "space"
		} else {
			e.Name = string(r)
		}
		return e
	}

	k := ev.Key()
	if name, ok := specialNames[k]; ok {
		e.Name = name
		if k == tcell.KeyBacktab {
			e.Shift = true
		}
		return e
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		e.Ctrl = true
		e.Name = string(rune('a' + k - tcell.KeyCtrlA))
		return e
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		e.Name = "f" + strconv.Itoa(int(k-tcell.KeyF1)+1)
		return e
	}
	if name, ok := tcell.KeyNames[k]; ok {
		e.Name = strings.ToLower(name)
	}
	return e
}
