package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/tui/keys"
)

func TestFocusClassification(t *testing.T) {
	app := tview.NewApplication()
	src := &inputSource{app: app}

	if got := src.focus(); got != keys.FocusNone {
		t.Errorf("focus() = %v with nothing focused, want FocusNone", got)
	}

	tests := []struct {
		name string
		p    tview.Primitive
		want keys.Focus
	}{
		{"input field", tview.NewInputField(), keys.FocusText},
		{"text area", tview.NewTextArea(), keys.FocusText},
		{"drop down", tview.NewDropDown(), keys.FocusText},
		{"table", tview.NewTable(), keys.FocusControl},
		{"text view", tview.NewTextView(), keys.FocusControl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.SetFocus(tt.p)
			if got := src.focus(); got != tt.want {
				t.Errorf("focus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDropDownFocusSuppressesShortcuts(t *testing.T) {
	app := tview.NewApplication()
	app.SetFocus(tview.NewDropDown())
	src := &inputSource{app: app}

	d := keys.NewDispatcher()
	quit, cleared := 0, 0
	d.SetHandlers(keys.HandlerMap{
		keys.ActionQuit:           func() { quit++ },
		keys.ActionClearSelection: func() { cleared++ },
	})
	d.Mount(src)
	defer d.Unmount()

	capture := app.GetInputCapture()
	if capture == nil {
		t.Fatal("Mount did not install an input capture")
	}

	// Printable keys belong to the drop-down's type-to-select, not to
	// shortcuts.
	if ev := capture(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); ev == nil {
		t.Error("q consumed while a drop-down has focus")
	}
	if quit != 0 {
		t.Errorf("quit handler fired %d times while a drop-down has focus", quit)
	}

	// Escape keeps its blur affordance.
	if ev := capture(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); ev != nil {
		t.Error("escape not consumed while a drop-down has focus")
	}
	if cleared != 1 {
		t.Errorf("clear handler fired %d times, want 1", cleared)
	}
}
