package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/tui/model"
	"github.com/rberon/strmctl/internal/tui/ui"
)

// StatusBar displays persistent session and server status.
type StatusBar struct {
	*tview.TextView
	theme      *ui.Theme
	session    string
	state      string
	publishers int
	readers    int
	flash      *model.FlashMessage
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(tview.Styles.MoreContrastBackgroundColor)

	return &StatusBar{TextView: tv, theme: theme}
}

// SetSession updates the session name display.
func (sb *StatusBar) SetSession(name string) {
	sb.session = name
	sb.render()
}

// SetState updates the daemon state display.
func (sb *StatusBar) SetState(state string, publishers, readers int) {
	sb.state = state
	sb.publishers = publishers
	sb.readers = readers
	sb.render()
}

// SetFlash sets the transient message area.
func (sb *StatusBar) SetFlash(msg *model.FlashMessage) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	stateColor := sb.theme.StoppedColor
	switch sb.state {
	case "LIVE":
		stateColor = sb.theme.LiveColor
	case "DEGRADED", "RESTARTING":
		stateColor = sb.theme.DegradedColor
	}

	clock := time.Now().Format("15:04")
	line := fmt.Sprintf(" [::b]%s[-:-:-] | [%s]%s[-] | pub %d rdr %d | %s",
		sb.session, colorTag(stateColor), sb.state, sb.publishers, sb.readers, clock)

	if sb.flash != nil {
		var fc string
		switch sb.flash.Level {
		case model.FlashWarn:
			fc = colorTag(sb.theme.FlashWarnColor)
		case model.FlashErr:
			fc = colorTag(sb.theme.FlashErrColor)
		default:
			fc = colorTag(sb.theme.FlashInfoColor)
		}
		line += fmt.Sprintf(" | [%s]%s[-]", fc, sb.flash.Text)
	}

	_, _ = fmt.Fprint(sb, line)
}
