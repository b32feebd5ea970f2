package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// quitRequest and reloadRequest travel through terminal interrupts so that
// every engine call happens on the event loop goroutine.
type (
	quitRequest   struct{}
	reloadRequest struct{ path string }
)

// SetBackend sets the terminal the event loop reads from.
func (a *Application) SetBackend(term *backend.Terminal) {
	a.term = term
}

// Run initializes the terminal and feeds its events to the engine until
// Quit is called, the context ends or the terminal closes.
func (a *Application) Run(ctx context.Context) error {
	if a.term == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.term.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.term.Shutdown()

	a.feeder = backend.NewFeeder(a.engine.Document().Element, a.engine.Window(), a.logger)

	if a.cfg.Keymaps.Watch {
		if err := a.watchPaths(); err != nil {
			a.logger.Warn("watch disabled", "error", err)
		} else {
			go a.forwardReloads(a.watcher.Events())
		}
	}

	stop := context.AfterFunc(ctx, func() { a.term.Interrupt(quitRequest{}) })
	defer stop()

	a.quitting = false
	a.draw()
	for !a.quitting {
		switch ev := a.term.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			switch req := ev.Data().(type) {
			case quitRequest:
				return nil
			case reloadRequest:
				a.handleReload(req.path)
			}
		case *tcell.EventKey, *tcell.EventFocus:
			a.feeder.Feed(ev)
		}
		a.draw()
	}
	return nil
}

func (a *Application) forwardReloads(events <-chan string) {
	for path := range events {
		a.term.Interrupt(reloadRequest{path: path})
	}
}

func (a *Application) handleReload(path string) {
	if !isScript(path) {
		if _, err := keymap.FormatFor(path); err != nil {
			return
		}
	}
	if err := a.Reload(path); err != nil {
		a.logger.Warn("reload failed", "path", path, "error", err)
		a.lastFire = "reload failed: " + path
		return
	}
	a.lastFire = "reloaded " + path
}

// StatusLines returns the status view.
func (a *Application) StatusLines() []string {
	pressed := make([]string, 0, 4)
	for _, c := range a.engine.GetPressedKeyCodes() {
		pressed = append(pressed, key.Name(c))
	}

	version := a.opts.Version
	if version == "" {
		version = "dev"
	}
	lines := []string{
		fmt.Sprintf("hotkeys %s  scope: %s  bindings: %d", version, a.engine.GetScope(), len(a.engine.Bindings())),
		"pressed: " + strings.Join(pressed, "+"),
		"last: " + a.lastFire,
	}
	if m := a.engine.Metrics(); m != nil {
		lines = append(lines, fmt.Sprintf("events: %d  fired: %d  suppressed: %d",
			m.TotalEvents(), m.TotalFired(), m.TotalSuppressed()))
	}
	if a.showKeys {
		lines = append(lines, "")
		lines = append(lines, a.KeyList()...)
	}
	return lines
}

func (a *Application) draw() {
	a.term.DrawLines(a.StatusLines())
}
