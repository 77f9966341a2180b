package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// EventLog shows the daemon's journaled events, newest first.
type EventLog struct {
	*tview.Table
	theme *ui.Theme
}

// NewEventLog creates the events table.
func NewEventLog(theme *ui.Theme) *EventLog {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
	table.SetTitle(" Events ")
	table.SetTitleColor(theme.TitleColor)

	return &EventLog{Table: table, theme: theme}
}

// Name implements Component.
func (el *EventLog) Name() string { return "Events" }

// Hints implements Component.
func (el *EventLog) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: keys.Format("escape"), Description: "Back"},
		{Key: keys.Format("q"), Description: "Quit"},
	}
}

// Update refreshes the event list.
func (el *EventLog) Update(events []rpc.Event) {
	el.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{" TIME", 0},
		{" KIND", 1},
		{" DETAIL", 2},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(el.theme.TableHeaderFg).
			SetBackgroundColor(el.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		el.SetCell(0, col, cell)
	}

	for i, e := range events {
		row := i + 1
		el.SetCell(row, 0, tview.NewTableCell(" "+e.CreatedAt).SetTextColor(el.theme.FgColor))
		el.SetCell(row, 1, tview.NewTableCell(" "+e.Kind).SetExpansion(1).SetTextColor(el.theme.FgColor))
		el.SetCell(row, 2, tview.NewTableCell(" "+tview.Escape(e.Detail)).SetExpansion(2).SetTextColor(el.theme.FgColor))
	}

	el.SetTitle(fmt.Sprintf(" Events (%d) ", len(events)))
}
