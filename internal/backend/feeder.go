package backend

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/dom"
	"github.com/dshills/hotkeys/internal/input/key"
)

// modifierOrder is the order synthetic modifier presses are sent in.
// Releases go in reverse.
var modifierOrder = [...]struct {
	code key.Code
	mod  key.Modifier
}{
	{key.CodeCtrl, key.ModCtrl},
	{key.CodeAlt, key.ModAlt},
	{key.CodeShift, key.ModShift},
	{key.CodeMeta, key.ModMeta},
}

// Feeder converts terminal events into DOM key events.
type Feeder struct {
	target *dom.Element
	window *dom.Window
	logger *slog.Logger

	// ExpandModifiers sends a press and release for every held modifier
	// around the key. Without it only the key itself is sent.
	ExpandModifiers bool
}

// NewFeeder creates a feeder delivering to target and reporting focus to
// window. window may be nil.
func NewFeeder(target *dom.Element, window *dom.Window, logger *slog.Logger) *Feeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feeder{
		target:          target,
		window:          window,
		logger:          logger,
		ExpandModifiers: true,
	}
}

// Feed delivers one terminal event and returns the key events it produced.
// Events other than keys and focus gains produce nothing.
func (f *Feeder) Feed(ev tcell.Event) []*key.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		code, mods, ok := Translate(e)
		if !ok {
			f.logger.Debug("untranslated key", "key", e.Name())
			return nil
		}
		return f.Press(code, mods)

	case *tcell.EventFocus:
		if e.Focused && f.window != nil {
			f.window.Focus()
		}
	}
	return nil
}

// Press sends the keydown and keyup sequence for code held with mods.
func (f *Feeder) Press(code key.Code, mods key.Modifier) []*key.Event {
	var out []*key.Event
	send := func(typ key.EventType, c key.Code, m key.Modifier) {
		ev := key.NewEvent(typ, c, m)
		ev.Target = f.target
		f.target.DispatchEvent(ev)
		out = append(out, ev)
	}

	if !f.ExpandModifiers || code.IsModifier() {
		send(key.KeyDown, code, mods)
		send(key.KeyUp, code, mods)
		return out
	}

	var held key.Modifier
	for _, m := range modifierOrder {
		if mods.Has(m.mod) {
			held = held.With(m.mod)
			send(key.KeyDown, m.code, held)
		}
	}

	send(key.KeyDown, code, held)
	send(key.KeyUp, code, held)

	for i := len(modifierOrder) - 1; i >= 0; i-- {
		m := modifierOrder[i]
		if held.Has(m.mod) {
			held = held.Without(m.mod)
			send(key.KeyUp, m.code, held)
		}
	}
	return out
}
