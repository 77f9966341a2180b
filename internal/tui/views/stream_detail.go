package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/rpc"
	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// StreamDetail shows a single stream path.
type StreamDetail struct {
	*tview.TextView
	theme *ui.Theme
}

// NewStreamDetail creates the detail view.
func NewStreamDetail(theme *ui.Theme) *StreamDetail {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitleColor(theme.TitleColor)

	return &StreamDetail{TextView: tv, theme: theme}
}

// Name implements Component.
func (sd *StreamDetail) Name() string { return "Stream" }

// Hints implements Component.
func (sd *StreamDetail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: keys.Format("c"), Description: "Copy URL"},
		{Key: keys.Format("escape"), Description: "Back"},
	}
}

// Show renders one path with the ingest and playback endpoints it maps
// to.
func (sd *StreamDetail) Show(p rpc.Path, st *rpc.StatusResponse) {
	sd.Clear()
	sd.SetTitle(fmt.Sprintf(" Stream: %s ", p.Name))

	state := "IDLE"
	if p.Ready {
		state = "READY"
	}
	source := p.Source
	if source == "" {
		source = "none"
	}

	_, _ = fmt.Fprintf(sd, "\n  [::b]Name[-:-:-]     %s\n", tview.Escape(p.Name))
	_, _ = fmt.Fprintf(sd, "  [::b]State[-:-:-]    %s\n", state)
	_, _ = fmt.Fprintf(sd, "  [::b]Source[-:-:-]   %s\n", source)
	_, _ = fmt.Fprintf(sd, "  [::b]Readers[-:-:-]  %d\n", p.Readers)
	if st != nil {
		_, _ = fmt.Fprintf(sd, "\n  [::b]Ingest[-:-:-]   %s\n", st.IngestAddr)
		_, _ = fmt.Fprintf(sd, "  [::b]Play[-:-:-]     %s\n", st.PlayURL)
	}
}
