package views

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/model"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// StreamList is the main streams table.
type StreamList struct {
	*tview.Table
	theme     *ui.Theme
	paths     []rpc.Path
	selection *model.Selection
	filter    string
	total     int
}

// NewStreamList creates the streams table.
func NewStreamList(theme *ui.Theme, selection *model.Selection) *StreamList {
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
	table.SetTitle(" Streams ")
	table.SetTitleColor(theme.TitleColor)

	return &StreamList{
		Table:     table,
		theme:     theme,
		selection: selection,
	}
}

// Name implements Component.
func (sl *StreamList) Name() string { return "Streams" }

// Hints implements Component.
func (sl *StreamList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: keys.Format("enter"), Description: "Detail"},
		{Key: keys.Format("space"), Description: "Mark"},
		{Key: keys.Format("/"), Description: "Filter"},
		{Key: keys.Format("c"), Description: "Copy URL"},
		{Key: keys.Format("s"), Description: "Share"},
		{Key: keys.Format("?"), Description: "Help"},
		{Key: keys.Format("q"), Description: "Quit"},
	}
}

// Update refreshes the table. paths is the already-filtered view;
// total is the unfiltered path count for the title.
func (sl *StreamList) Update(paths []rpc.Path, total int, filter string) {
	sl.paths = paths
	sl.total = total
	sl.filter = filter
	sl.render()
}

func (sl *StreamList) render() {
	sl.Clear()

	headers := []struct {
		text string
		exp  int
	}{
		{"  ", 0},
		{" NAME", 2},
		{" STATE", 0},
		{" SOURCE", 1},
		{" READERS", 0},
	}
	for col, h := range headers {
		cell := tview.NewTableCell(h.text).
			SetSelectable(false).
			SetTextColor(sl.theme.TableHeaderFg).
			SetBackgroundColor(sl.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(h.exp)
		sl.SetCell(0, col, cell)
	}

	for i, p := range sl.paths {
		row := i + 1

		mark := " "
		if sl.selection.Has(p.Name) {
			mark = "*"
		}
		state := "IDLE"
		stateColor := sl.theme.StoppedColor
		if p.Ready {
			state = "READY"
			stateColor = sl.theme.LiveColor
		}
		source := p.Source
		if source == "" {
			source = "-"
		}

		sl.SetCell(row, 0, tview.NewTableCell(mark).SetTextColor(sl.theme.TitleColor))
		sl.SetCell(row, 1, tview.NewTableCell(" "+tview.Escape(p.Name)).SetExpansion(2).SetTextColor(sl.theme.FgColor))
		sl.SetCell(row, 2, tview.NewTableCell(" "+state).SetTextColor(stateColor))
		sl.SetCell(row, 3, tview.NewTableCell(" "+source).SetExpansion(1).SetTextColor(sl.theme.FgColor))
		sl.SetCell(row, 4, tview.NewTableCell(strconv.Itoa(p.Readers)).SetAlign(tview.AlignRight).SetTextColor(sl.theme.FgColor))
	}

	if sl.filter != "" {
		sl.SetTitle(fmt.Sprintf(" Streams (%d/%d) filter: %s ", len(sl.paths), sl.total, sl.filter))
	} else {
		sl.SetTitle(fmt.Sprintf(" Streams (%d) ", sl.total))
	}
}

// SelectedPath returns the name of the path under the cursor.
func (sl *StreamList) SelectedPath() string {
	row, _ := sl.GetSelection()
	idx := row - 1 // header
	if idx < 0 || idx >= len(sl.paths) {
		return ""
	}
	return sl.paths[idx].Name
}

// VisiblePaths returns the names of all currently listed paths.
func (sl *StreamList) VisiblePaths() []string {
	names := make([]string, len(sl.paths))
	for i, p := range sl.paths {
		names[i] = p.Name
	}
	return names
}
