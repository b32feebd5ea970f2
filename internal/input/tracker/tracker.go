// Package tracker maintains live keyboard state: which keys are held and
// which of the four modifiers are down.
//
// The pressed-key list accumulates across keydown events until the
// matching keyup, a meta keyup, or a window focus clears it. Modifier flags
// are overwritten from each event's native flags so they cannot drift.
package tracker

import (
	"slices"

	"github.com/dshills/hotkeys/internal/input/key"
)

// State holds the pressed keys and modifier flags.
//
// State is not safe for concurrent use. It is owned by a single dispatcher
// and mutated on the goroutine that delivers key events.
type State struct {
	pressed []key.Code
	mods    key.Modifier
}

// New creates an empty state.
func New() *State {
	return &State{pressed: make([]key.Code, 0, 8)}
}

// Press records code as held. Duplicates and the IME marker are ignored.
// Returns true if the code was added.
func (s *State) Press(code key.Code) bool {
	if code == key.CodeIME || slices.Contains(s.pressed, code) {
		return false
	}
	s.pressed = append(s.pressed, code)
	return true
}

// Release removes code from the pressed list and clears its modifier flag.
//
// A release whose key value names the meta key flushes every pressed key:
// browsers emit a single keyup for a meta combo, so the co-held keys would
// otherwise stay recorded forever.
func (s *State) Release(ev *key.Event) {
	code := key.Normalize(ev.Code())
	if i := slices.Index(s.pressed, code); i >= 0 {
		s.pressed = slices.Delete(s.pressed, i, i+1)
	}
	if ev.IsMeta() {
		s.Flush()
	}
	if code.IsModifier() {
		s.mods = s.mods.Without(key.ModifierForCode(code))
	}
}

// Flush forgets every pressed key. Modifier flags are left alone; they are
// recomputed from the next event.
func (s *State) Flush() {
	s.pressed = s.pressed[:0]
}

// SetModifier sets a single modifier flag from its key code.
func (s *State) SetModifier(code key.Code, held bool) {
	s.mods = s.mods.Set(key.ModifierForCode(code), held)
}

// UpdateFromEvent overwrites all four modifier flags from the event.
func (s *State) UpdateFromEvent(ev *key.Event) {
	s.mods = ev.Modifiers()
}

// Modifiers returns the current modifier flags.
func (s *State) Modifiers() key.Modifier {
	return s.mods
}

// Held reports whether the modifier with the given code is down.
func (s *State) Held(code key.Code) bool {
	return s.mods.Has(key.ModifierForCode(code))
}

// IsPressed reports whether code is in the pressed list.
func (s *State) IsPressed(code key.Code) bool {
	return slices.Contains(s.pressed, key.Normalize(code))
}

// Pressed returns a copy of the pressed list in press order.
func (s *State) Pressed() []key.Code {
	out := make([]key.Code, len(s.pressed))
	copy(out, s.pressed)
	return out
}

// Len returns the number of pressed keys.
func (s *State) Len() int {
	return len(s.pressed)
}

// Matches reports whether the pressed list holds exactly codes, ignoring
// order. A superset does not match.
func (s *State) Matches(codes []key.Code) bool {
	return key.SameCodes(s.pressed, codes)
}

// Reset clears pressed keys and modifier flags.
func (s *State) Reset() {
	s.Flush()
	s.mods = key.ModNone
}
