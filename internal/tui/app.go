// Package tui is the strmtui application shell: it composes the views,
// owns the refresh loop and binds the shortcut dispatcher to tview's
// input stream.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rberon/strmctl/internal/api"
	"github.com/rberon/strmctl/internal/errmsg"
	"github.com/rberon/strmctl/internal/secret"
	"github.com/rberon/strmctl/internal/tui/client"
	"github.com/rberon/strmctl/internal/tui/keys"
	"github.com/rberon/strmctl/internal/tui/model"
	"github.com/rberon/strmctl/internal/tui/ui"
	"github.com/rberon/strmctl/internal/tui/views"
)

// App is the main TUI application shell.
type App struct {
	app        *tview.Application
	pages      *tview.Pages
	vm         *model.ViewModel
	grpc       *client.Client
	session    string
	dispatcher *keys.Dispatcher
	theme      *ui.Theme

	statusBar *views.StatusBar
	menu      *ui.Menu
	prompt    *ui.Prompt
	streams   *views.StreamList
	events    *views.EventLog
	help      *views.HelpView
	share     *views.ShareView
	detail    *views.StreamDetail

	streamsFlex   *tview.Flex
	promptVisible bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(c *client.Client, sessionName string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	vm := model.NewViewModel(c)
	theme := ui.DefaultTheme()

	a := &App{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		vm:         vm,
		grpc:       c,
		session:    sessionName,
		dispatcher: keys.NewDispatcher(),
		theme:      theme,
		statusBar:  views.NewStatusBar(theme),
		menu:       ui.NewMenu(theme),
		prompt:     ui.NewPrompt(theme),
		streams:    views.NewStreamList(theme, vm.Selection),
		events:     views.NewEventLog(theme),
		help:       views.NewHelpView(theme),
		share:      views.NewShareView(theme),
		detail:     views.NewStreamDetail(theme),
		ctx:        ctx,
		cancel:     cancel,
	}

	a.statusBar.SetSession(sessionName)
	a.setupHandlers()
	a.setupPrompt()
	a.setupLayout()

	return a
}

// inputSource adapts tview's input capture hook to the dispatcher's
// Source interface, classifying the focused widget on every press.
type inputSource struct {
	app *tview.Application
}

func (s *inputSource) Subscribe(capture func(keys.Event, keys.Focus) bool) (cancel func()) {
	s.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if capture(keys.FromTcell(event), s.focus()) {
			return nil
		}
		return event
	})
	return func() {
		s.app.SetInputCapture(nil)
	}
}

func (s *inputSource) focus() keys.Focus {
	switch s.app.GetFocus().(type) {
	case nil:
		return keys.FocusNone
	case *tview.InputField, *tview.TextArea, *tview.DropDown:
		// DropDown counts as text input: its type-to-select prefix
		// matching consumes printable keys like a field does.
		return keys.FocusText
	default:
		return keys.FocusControl
	}
}

func (a *App) setupHandlers() {
	a.dispatcher.SetHandlers(keys.HandlerMap{
		keys.ActionQuit:      func() { a.Stop() },
		keys.ActionShowHelp:  func() { a.switchTo("help") },
		keys.ActionShowEvents: func() {
			a.switchTo("events")
			a.refreshSoon()
		},
		keys.ActionFilter:         a.openFilter,
		keys.ActionToggleSelected: a.toggleSelected,
		keys.ActionSelectAll:      a.selectAll,
		keys.ActionClearSelection: a.escape,
		keys.ActionDeselect:       a.deselect,
		keys.ActionOpenDetail:     a.openDetail,
		keys.ActionCopyURL:        a.copyPlayURL,
		keys.ActionShowShare:      a.showShare,
		keys.ActionRestartServer: func() {
			a.invoke(api.CmdServerRestart, nil, "Server restarted")
		},
		keys.ActionExportDiagnostics: func() {
			a.invoke(api.CmdDiagExport, nil, "Diagnostics bundle written")
		},
	})
}

func (a *App) setupPrompt() {
	a.prompt.SetOnChange(func(text string) {
		a.vm.SetFilter(text)
		a.renderStreams()
	})
	a.prompt.SetOnSubmit(func(string) {
		a.closeFilter(false)
	})
	a.prompt.SetOnCancel(func() {
		a.closeFilter(true)
	})
}

func (a *App) setupLayout() {
	a.streamsFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.streams, 0, 1, true)

	a.pages.AddPage("streams", a.streamsFlex, true, true)
	a.pages.AddPage("events", a.events, true, false)
	a.pages.AddPage("help", a.help, true, false)
	a.pages.AddPage("share", a.share, true, false)
	a.pages.AddPage("detail", a.detail, true, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.menu, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(root, true)
	a.updateMenu()
}

func (a *App) switchTo(page string) {
	a.pages.SwitchToPage(page)
	a.updateMenu()
}

func (a *App) updateMenu() {
	page, _ := a.pages.GetFrontPage()
	var c ui.Component
	switch page {
	case "streams":
		c = a.streams
	case "events":
		c = a.events
	case "help":
		c = a.help
	case "share":
		c = a.share
	case "detail":
		c = a.detail
	}
	if c != nil {
		a.menu.Update(c.Hints())
	}
}

// escape backs out of subpages and the filter first; on the streams
// page it clears the selection.
func (a *App) escape() {
	if page, _ := a.pages.GetFrontPage(); page != "streams" {
		a.switchTo("streams")
		a.app.SetFocus(a.streams)
		return
	}
	if a.promptVisible {
		a.closeFilter(true)
		return
	}
	a.vm.Selection.Clear()
	a.renderStreams()
}

func (a *App) openFilter() {
	if page, _ := a.pages.GetFrontPage(); page != "streams" {
		return
	}
	if !a.promptVisible {
		a.streamsFlex.AddItem(a.prompt, 3, 0, false)
		a.promptVisible = true
	}
	a.prompt.Activate()
	a.app.SetFocus(a.prompt)
}

func (a *App) closeFilter(clear bool) {
	if clear {
		a.vm.SetFilter("")
	}
	if a.promptVisible {
		a.streamsFlex.RemoveItem(a.prompt)
		a.promptVisible = false
	}
	a.app.SetFocus(a.streams)
	a.renderStreams()
}

func (a *App) toggleSelected() {
	a.vm.Selection.Toggle(a.streams.SelectedPath())
	a.renderStreams()
}

func (a *App) selectAll() {
	a.vm.Selection.SelectAll(a.streams.VisiblePaths())
	a.renderStreams()
}

func (a *App) deselect() {
	a.vm.Selection.Deselect(a.streams.SelectedPath())
	a.renderStreams()
}

func (a *App) openDetail() {
	name := a.streams.SelectedPath()
	if name == "" {
		return
	}
	st := a.vm.Status()
	if st == nil {
		return
	}
	for _, p := range st.Paths {
		if p.Name == name {
			a.detail.Show(p, st)
			a.switchTo("detail")
			return
		}
	}
}

func (a *App) copyPlayURL() {
	st := a.vm.Status()
	if st == nil || st.PlayURL == "" {
		a.vm.Flash.Warn("No playback URL configured")
		a.renderStatusBar()
		return
	}
	if err := clipboard.WriteAll(st.PlayURL); err != nil {
		a.vm.Flash.Err(errmsg.Humanize(err))
	} else {
		a.vm.Flash.Info("Playback URL copied")
	}
	a.renderStatusBar()
}

func (a *App) showShare() {
	playURL, publishURL := "", ""
	if st := a.vm.Status(); st != nil {
		playURL = st.PlayURL
		publishURL = st.IngestAddr
	}
	if publishURL != "" {
		// The encoder needs the passphrase; omit the parameter when none
		// is stored.
		if pass, err := secret.PublishPassphrase(a.session); err == nil {
			publishURL += "?passphrase=" + pass
		}
	}
	a.share.Show(playURL, publishURL)
	a.switchTo("share")
}

// invoke runs a control command off the UI goroutine and flashes the
// outcome.
func (a *App) invoke(command string, args map[string]string, okMsg string) {
	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
		defer cancel()
		resp, err := a.vm.Invoke(ctx, command, args)
		if err != nil {
			a.vm.Flash.Err(errmsg.Humanize(err))
		} else {
			msg := okMsg
			if resp.Detail != "" {
				msg += ": " + resp.Detail
			}
			a.vm.Flash.Info(msg)
		}
		_ = a.vm.LoadStatus(a.ctx)
		a.app.QueueUpdateDraw(a.renderAll)
	}()
}

func (a *App) renderStreams() {
	st := a.vm.Status()
	total := 0
	if st != nil {
		total = len(st.Paths)
	}
	a.streams.Update(a.vm.Paths(), total, a.vm.Filter())
}

func (a *App) renderStatusBar() {
	if st := a.vm.Status(); st != nil {
		a.statusBar.SetState(st.State, st.Publishers, st.Readers)
	}
	a.statusBar.SetFlash(a.vm.Flash.Get())
}

func (a *App) renderAll() {
	a.renderStreams()
	a.events.Update(a.vm.Events())
	a.renderStatusBar()
	a.updateMenu()
}

func (a *App) refreshSoon() {
	go func() {
		_ = a.vm.LoadStatus(a.ctx)
		_ = a.vm.LoadEvents(a.ctx)
		a.app.QueueUpdateDraw(a.renderAll)
	}()
}

// Run starts the TUI application. Blocks until Stop or quit.
func (a *App) Run() error {
	a.dispatcher.Mount(&inputSource{app: a.app})
	a.refreshSoon()
	a.startRefreshLoop()
	return a.app.Run()
}

func (a *App) startRefreshLoop() {
	ticker := time.NewTicker(2 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = a.vm.LoadStatus(a.ctx)
				_ = a.vm.LoadEvents(a.ctx)
				a.app.QueueUpdateDraw(a.renderAll)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.dispatcher.Unmount()
	a.app.Stop()
}
