package dispatcher

import (
	"github.com/dshills/hotkeys/internal/dom"
	"github.com/dshills/hotkeys/internal/input/key"
)

// Filter decides whether an event may trigger shortcuts.
// Returning false drops the event before any state is updated.
type Filter func(ev *key.Event) bool

// DefaultFilter rejects events aimed at text entry: content-editable
// elements, every textarea, and inputs that are not read-only. Selects,
// read-only inputs and events without a target pass.
func DefaultFilter(ev *key.Event) bool {
	t := ev.Target
	if t == nil {
		return true
	}

	tag := t.TagName()
	if t.IsContentEditable() || tag == dom.TagTextarea {
		return false
	}
	if tag == dom.TagInput && !t.IsReadOnly() {
		return false
	}
	return true
}

// AllowAll accepts every event.
func AllowAll(*key.Event) bool {
	return true
}
