package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// HelpView displays the key binding reference, generated from the
// shortcut registry so it can never drift from the actual bindings.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: keys.Format("escape"), Description: "Back"},
	}
}

func (hv *HelpView) render() {
	kc := colorTag(hv.theme.MenuKeyColor)

	for _, group := range keys.Groups() {
		_, _ = fmt.Fprintf(hv, "\n  [::b]%s[-:-:-]\n\n", group.Name)
		for _, sc := range group.Shortcuts {
			_, _ = fmt.Fprintf(hv, "  [%s]%-14s[-:-:-] %s\n", kc, keys.Format(sc.Keys), sc.Description)
		}
	}
}
