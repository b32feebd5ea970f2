// Package dom models the small slice of a document object model the
// hotkey engine consumes: elements that receive key events and bubble them
// to their ancestors, a document root, and a window that reports focus.
//
// Elements are identities. The engine tracks which elements it has
// attached listeners to by pointer, so two elements with the same tag are
// still distinct.
package dom

import (
	"strings"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Event names accepted by AddEventListener.
const (
	EventKeydown = "keydown"
	EventKeyup   = "keyup"
)

// Common tag names.
const (
	TagDocument = "#DOCUMENT"
	TagInput    = "INPUT"
	TagTextarea = "TEXTAREA"
	TagSelect   = "SELECT"
	TagDiv      = "DIV"
)

// Listener receives key events delivered to an element.
type Listener func(ev *key.Event)

// Element is a node that can receive and bubble key events.
type Element struct {
	tag             string
	parent          *Element
	contentEditable bool
	readOnly        bool
	listeners       map[string][]Listener
}

// NewElement creates a detached element. The tag is stored uppercase.
func NewElement(tag string) *Element {
	return &Element{
		tag:       strings.ToUpper(tag),
		listeners: make(map[string][]Listener),
	}
}

// AppendChild attaches child under e and returns child.
func (e *Element) AppendChild(child *Element) *Element {
	child.parent = e
	return child
}

// Parent returns the parent element, or nil for a root.
func (e *Element) Parent() *Element {
	return e.parent
}

// TagName returns the uppercase tag.
func (e *Element) TagName() string {
	return e.tag
}

// IsContentEditable reports whether the element accepts free text.
func (e *Element) IsContentEditable() bool {
	return e.contentEditable
}

// SetContentEditable sets the content-editable flag.
func (e *Element) SetContentEditable(v bool) *Element {
	e.contentEditable = v
	return e
}

// IsReadOnly reports whether a form control is read-only.
func (e *Element) IsReadOnly() bool {
	return e.readOnly
}

// SetReadOnly sets the read-only flag.
func (e *Element) SetReadOnly(v bool) *Element {
	e.readOnly = v
	return e
}

// AddEventListener registers fn for events of the given type.
// Registering twice yields two invocations per event.
func (e *Element) AddEventListener(typ string, fn Listener) {
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// ListenerCount returns the number of listeners for an event type.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// DispatchEvent delivers ev with e as the target and bubbles it to every
// ancestor until a listener stops propagation.
func (e *Element) DispatchEvent(ev *key.Event) {
	if ev.Target == nil {
		ev.Target = e
	}

	typ := ev.Type.String()
	for node := e; node != nil; node = node.parent {
		// Listeners added during dispatch do not see this event.
		listeners := node.listeners[typ]
		for _, fn := range listeners[:len(listeners):len(listeners)] {
			fn(ev)
		}
		if ev.PropagationStopped() {
			return
		}
	}
}

// Document is the root element events bubble to.
type Document struct {
	*Element
}

// NewDocument creates an empty document root.
func NewDocument() *Document {
	return &Document{Element: NewElement(TagDocument)}
}

// CreateElement creates an element attached directly under the document.
func (d *Document) CreateElement(tag string) *Element {
	return d.AppendChild(NewElement(tag))
}

// Window delivers focus notifications.
type Window struct {
	focus []func()
}

// NewWindow creates a window with no listeners.
func NewWindow() *Window {
	return &Window{}
}

// OnFocus registers fn to run when the window gains focus.
func (w *Window) OnFocus(fn func()) {
	w.focus = append(w.focus, fn)
}

// FocusListenerCount returns the number of focus listeners.
func (w *Window) FocusListenerCount() int {
	return len(w.focus)
}

// Focus notifies every focus listener.
func (w *Window) Focus() {
	for _, fn := range w.focus[:len(w.focus):len(w.focus)] {
		fn()
	}
}
