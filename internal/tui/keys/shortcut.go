// Package keys implements the keyboard-shortcut dispatch system for the
// console: a fixed registry of key combos, a normalizer that turns raw
// key events into canonical combo strings, and a dispatcher that routes
// matching events to caller-supplied handlers.
package keys

import "fmt"

// Action identifies a user intent independent of the physical keys that
// trigger it.
type Action string

const (
	ActionShowHelp          Action = "show_help"
	ActionQuit              Action = "quit"
	ActionShowEvents        Action = "show_events"
	ActionFilter            Action = "filter"
	ActionToggleSelected    Action = "toggle_selected"
	ActionSelectAll         Action = "select_all"
	ActionClearSelection    Action = "clear_selection"
	ActionDeselect          Action = "deselect"
	ActionOpenDetail        Action = "open_detail"
	ActionCopyURL           Action = "copy_url"
	ActionShowShare         Action = "show_share"
	ActionRestartServer     Action = "restart_server"
	ActionExportDiagnostics Action = "export_diagnostics"
)

// Shortcut binds a canonical combo string to an action.
//
// Keys follows the canonical grammar [mod+][shift+][alt+]<key> with the
// base key lowercased; it must be produced identically by the table
// below and by Normalize or lookups silently fail.
type Shortcut struct {
	Keys        string
	Action      Action
	Description string
	Category    string
}

// table is the process-wide shortcut registry. It is populated once
// here and never mutated; both Keys and Action are unique across it.
var table = []Shortcut{
	{Keys: "?", Action: ActionShowHelp, Description: "Show keyboard shortcuts", Category: "General"},
	{Keys: "q", Action: ActionQuit, Description: "Quit the console", Category: "General"},
	{Keys: "e", Action: ActionShowEvents, Description: "Show the event log", Category: "General"},
	{Keys: "/", Action: ActionFilter, Description: "Filter the stream list", Category: "General"},

	{Keys: "space", Action: ActionToggleSelected, Description: "Toggle selection under the cursor", Category: "Selection"},
	{Keys: "mod+a", Action: ActionSelectAll, Description: "Select all visible streams", Category: "Selection"},
	{Keys: "escape", Action: ActionClearSelection, Description: "Clear selection / leave input", Category: "Selection"},
	{Keys: "delete", Action: ActionDeselect, Description: "Deselect the stream under the cursor", Category: "Selection"},

	{Keys: "enter", Action: ActionOpenDetail, Description: "Open stream detail", Category: "Stream"},
	{Keys: "c", Action: ActionCopyURL, Description: "Copy the playback URL", Category: "Stream"},
	{Keys: "s", Action: ActionShowShare, Description: "Show the playback QR code", Category: "Stream"},
	{Keys: "mod+shift+r", Action: ActionRestartServer, Description: "Restart the media server", Category: "Stream"},

	{Keys: "mod+shift+d", Action: ActionExportDiagnostics, Description: "Export a diagnostics bundle", Category: "Diagnostics"},
}

var byKeys = buildIndex()

func buildIndex() map[string]Shortcut {
	idx := make(map[string]Shortcut, len(table))
	actions := make(map[Action]struct{}, len(table))
	for _, sc := range table {
		if _, dup := idx[sc.Keys]; dup {
			panic(fmt.Sprintf("keys: duplicate combo %q in shortcut table", sc.Keys))
		}
		if _, dup := actions[sc.Action]; dup {
			panic(fmt.Sprintf("keys: duplicate action %q in shortcut table", sc.Action))
		}
		idx[sc.Keys] = sc
		actions[sc.Action] = struct{}{}
	}
	return idx
}

// Lookup returns the shortcut registered for a canonical combo string.
func Lookup(combo string) (Shortcut, bool) {
	sc, ok := byKeys[combo]
	return sc, ok
}

// All returns the registry in declaration order.
func All() []Shortcut {
	out := make([]Shortcut, len(table))
	copy(out, table)
	return out
}

// Group is a category of shortcuts for help display.
type Group struct {
	Name      string
	Shortcuts []Shortcut
}

// Groups returns the registry grouped by category, preserving the
// declaration order of both categories and entries. The grouping is a
// derived view for the help surface only.
func Groups() []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, sc := range table {
		i, ok := pos[sc.Category]
		if !ok {
			i = len(groups)
			pos[sc.Category] = i
			groups = append(groups, Group{Name: sc.Category})
		}
		groups[i].Shortcuts = append(groups[i].Shortcuts, sc)
	}
	return groups
}
