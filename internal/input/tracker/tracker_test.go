package tracker

import (
	"slices"
	"testing"

	"github.com/dshills/hotkeys/internal/input/key"
)

func TestStatePress(t *testing.T) {
	s := New()

	if !s.Press('A') {
		t.Error("Press('A') = false, want true")
	}
	if s.Press('A') {
		t.Error("Press('A') twice = true, want false")
	}
	if s.Press(key.CodeIME) {
		t.Error("Press(CodeIME) = true, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStatePressedOrder(t *testing.T) {
	s := New()
	s.Press(key.CodeCtrl)
	s.Press(key.CodeShift)
	s.Press('K')

	want := []key.Code{key.CodeCtrl, key.CodeShift, 'K'}
	if got := s.Pressed(); !slices.Equal(got, want) {
		t.Errorf("Pressed() = %v, want %v", got, want)
	}
}

func TestStatePressedIsCopy(t *testing.T) {
	s := New()
	s.Press('A')

	got := s.Pressed()
	got[0] = 'Z'

	if !s.IsPressed('A') {
		t.Error("mutating Pressed() result changed internal state")
	}
}

func TestStateRelease(t *testing.T) {
	s := New()
	s.Press(key.CodeCtrl)
	s.SetModifier(key.CodeCtrl, true)
	s.Press('K')

	s.Release(key.NewEvent(key.KeyUp, 'K', key.ModCtrl))
	if s.IsPressed('K') {
		t.Error("IsPressed('K') after release = true")
	}
	if !s.IsPressed(key.CodeCtrl) {
		t.Error("IsPressed(Ctrl) = false, want true")
	}

	s.Release(key.NewEvent(key.KeyUp, key.CodeCtrl, key.ModNone))
	if s.Held(key.CodeCtrl) {
		t.Error("Held(Ctrl) after release = true")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStateReleaseMetaFlushes(t *testing.T) {
	s := New()
	s.Press(key.CodeMeta)
	s.Press('C')
	s.Press('V')

	s.Release(key.NewEvent(key.KeyUp, key.CodeMetaGecko, key.ModNone))

	if s.Len() != 0 {
		t.Errorf("Len() after meta release = %d, want 0", s.Len())
	}
	if s.Held(key.CodeMeta) {
		t.Error("Held(Meta) after release = true")
	}
}

func TestStateReleaseMetaRightNormalized(t *testing.T) {
	s := New()
	s.Press(key.CodeMeta)

	ev := &key.Event{Type: key.KeyUp, KeyCode: key.CodeMetaRight}
	s.Release(ev)

	if s.IsPressed(key.CodeMeta) {
		t.Error("IsPressed(Meta) after right-meta release = true")
	}
}

func TestStateFlush(t *testing.T) {
	s := New()
	s.Press('A')
	s.Press('B')
	s.SetModifier(key.CodeShift, true)

	s.Flush()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if !s.Held(key.CodeShift) {
		t.Error("Flush() cleared modifier flags")
	}
}

func TestStateUpdateFromEvent(t *testing.T) {
	s := New()
	s.SetModifier(key.CodeAlt, true)

	s.UpdateFromEvent(key.NewEvent(key.KeyDown, 'A', key.ModCtrl|key.ModShift))

	tests := []struct {
		code key.Code
		want bool
	}{
		{key.CodeShift, true},
		{key.CodeCtrl, true},
		{key.CodeAlt, false},
		{key.CodeMeta, false},
	}
	for _, tt := range tests {
		if got := s.Held(tt.code); got != tt.want {
			t.Errorf("Held(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestStateMatches(t *testing.T) {
	s := New()
	s.Press(key.CodeCtrl)
	s.Press('K')

	tests := []struct {
		codes []key.Code
		want  bool
	}{
		{[]key.Code{'K', key.CodeCtrl}, true},
		{[]key.Code{key.CodeCtrl, 'K'}, true},
		{[]key.Code{'K'}, false},
		{[]key.Code{key.CodeCtrl, key.CodeShift, 'K'}, false},
	}
	for _, tt := range tests {
		if got := s.Matches(tt.codes); got != tt.want {
			t.Errorf("Matches(%v) = %v, want %v", tt.codes, got, tt.want)
		}
	}
}

func TestStateReset(t *testing.T) {
	s := New()
	s.Press('A')
	s.SetModifier(key.CodeMeta, true)

	s.Reset()

	if s.Len() != 0 || !s.Modifiers().IsEmpty() {
		t.Errorf("Reset() left pressed=%v mods=%v", s.Pressed(), s.Modifiers())
	}
}
