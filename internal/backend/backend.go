// Package backend feeds terminal key events into the engine.
//
// Terminals report a key as a single event with its modifiers attached and
// never report releases. A Feeder expands each terminal key into the
// keydown and keyup sequence a keyboard would produce, so held-key tracking
// and keyup handlers behave the same as with native events.
package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
	style  tcell.Style
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, style: tcell.StyleDefault}
}

// Init initializes the screen and enables focus reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PollEvent blocks until the next terminal event. It returns nil once the
// screen is finalized.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostKey queues a key event as if it had been typed.
func (t *Terminal) PostKey(k tcell.Key, r rune, mod tcell.ModMask) {
	_ = t.screen.PostEvent(tcell.NewEventKey(k, r, mod)) // best-effort; queue may be full
}

// Interrupt wakes PollEvent with an interrupt event carrying data.
func (t *Terminal) Interrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// DrawLines clears the screen and writes one string per row, truncated to
// the screen width.
func (t *Terminal) DrawLines(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	w, h := t.screen.Size()
	for y, line := range lines {
		if y >= h {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			t.screen.SetContent(x, y, r, nil, t.style)
			x++
		}
	}
	t.screen.Show()
}
