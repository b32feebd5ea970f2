package backend

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/dispatcher"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

func newFeeder(t *testing.T) (*Feeder, *dispatcher.Engine) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := dispatcher.New(dispatcher.DefaultConfig(), dispatcher.WithLogger(logger))
	return NewFeeder(e.Document().Element, e.Window(), logger), e
}

func TestFeederSequence(t *testing.T) {
	f, _ := newFeeder(t)

	events := f.Press('K', key.ModCtrl|key.ModShift)

	want := []struct {
		typ  key.EventType
		code key.Code
		mods key.Modifier
	}{
		{key.KeyDown, key.CodeCtrl, key.ModCtrl},
		{key.KeyDown, key.CodeShift, key.ModCtrl | key.ModShift},
		{key.KeyDown, 'K', key.ModCtrl | key.ModShift},
		{key.KeyUp, 'K', key.ModCtrl | key.ModShift},
		{key.KeyUp, key.CodeShift, key.ModCtrl},
		{key.KeyUp, key.CodeCtrl, key.ModNone},
	}
	if len(events) != len(want) {
		t.Fatalf("Press() produced %d events, want %d", len(events), len(want))
	}
	for i, w := range want {
		ev := events[i]
		if ev.Type != w.typ || ev.Code() != w.code || ev.Modifiers() != w.mods {
			t.Errorf("event %d = %v code %v, want %v %v(%v)", i, ev, ev.Code(), w.typ, w.code, w.mods)
		}
	}
}

func TestFeederFiresShortcut(t *testing.T) {
	f, e := newFeeder(t)

	downs, ups := 0, 0
	e.Bind("ctrl+k", dispatcher.Options{}, func(*key.Event, *keymap.Handler) keymap.Result {
		downs++
		return keymap.Suppress
	})
	e.Bind("ctrl+k", dispatcher.Options{NoKeydown: true, Keyup: true}, func(*key.Event, *keymap.Handler) keymap.Result {
		ups++
		return keymap.Continue
	})

	events := f.Feed(tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl))
	if downs != 1 || ups != 1 {
		t.Errorf("downs, ups = %d, %d, want 1, 1", downs, ups)
	}
	if !events[1].DefaultPrevented() {
		t.Error("keydown k should be suppressed")
	}
	if got := e.GetPressedKeyCodes(); len(got) != 0 {
		t.Errorf("GetPressedKeyCodes() after feed = %v, want empty", got)
	}
	if e.Modifiers() != key.ModNone {
		t.Errorf("Modifiers() after feed = %v, want none", e.Modifiers())
	}
}

func TestFeederWithoutExpansion(t *testing.T) {
	f, e := newFeeder(t)
	f.ExpandModifiers = false

	calls := 0
	e.Bind("ctrl+k", dispatcher.Options{}, func(*key.Event, *keymap.Handler) keymap.Result {
		calls++
		return keymap.Continue
	})

	events := f.Press('K', key.ModCtrl)
	if len(events) != 2 {
		t.Fatalf("Press() produced %d events, want 2", len(events))
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0 since ctrl was never pressed", calls)
	}
}

func TestFeederFocus(t *testing.T) {
	f, e := newFeeder(t)
	e.Bind("a", dispatcher.Options{}, nil)

	e.HandleKeyDown(key.NewEvent(key.KeyDown, 'A', key.ModNone))
	if !e.IsPressed('A') {
		t.Fatal("IsPressed(A) = false before focus")
	}

	if got := f.Feed(tcell.NewEventFocus(false)); got != nil {
		t.Errorf("Feed(focus lost) = %v, want nil", got)
	}
	if !e.IsPressed('A') {
		t.Error("losing focus should not flush")
	}

	f.Feed(tcell.NewEventFocus(true))
	if e.IsPressed('A') {
		t.Error("gaining focus should flush pressed keys")
	}
}

func TestFeederIgnoresOtherEvents(t *testing.T) {
	f, _ := newFeeder(t)
	if got := f.Feed(tcell.NewEventResize(80, 24)); got != nil {
		t.Errorf("Feed(resize) = %v, want nil", got)
	}
}
