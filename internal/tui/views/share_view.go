package views

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/skip2/go-qrcode"

	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// ShareView renders the playback URL as text and as a terminal QR code
// so a phone can join the stream by scanning the screen.
type ShareView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewShareView creates a new share view.
func NewShareView(theme *ui.Theme) *ShareView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Share ")
	tv.SetTitleColor(theme.TitleColor)

	return &ShareView{TextView: tv, theme: theme}
}

// Name implements Component.
func (sv *ShareView) Name() string { return "Share" }

// Hints implements Component.
func (sv *ShareView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: keys.Format("c"), Description: "Copy URL"},
		{Key: keys.Format("escape"), Description: "Back"},
	}
}

// Show renders the playback URL and its QR code, plus the publish URL
// for the operator to hand to the encoder side.
func (sv *ShareView) Show(playURL, publishURL string) {
	sv.Clear()
	if playURL == "" {
		_, _ = fmt.Fprint(sv, "\n\nNo playback URL configured.\n\nSet server.play_url in config.toml.")
		return
	}

	qr, err := qrcode.New(playURL, qrcode.Medium)
	if err != nil {
		_, _ = fmt.Fprintf(sv, "\n\n%s\n\nQR unavailable: %v", playURL, err)
		return
	}

	_, _ = fmt.Fprintf(sv, "\n%s\n\n", playURL)
	// Inverted halves the height by packing two QR rows per text line.
	_, _ = fmt.Fprint(sv, tview.Escape(qr.ToSmallString(false)))
	if publishURL != "" {
		_, _ = fmt.Fprintf(sv, "\n\nPublish: %s", tview.Escape(publishURL))
	}
}
