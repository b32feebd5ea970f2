package key

import (
	"fmt"
	"strings"
	"time"
)

// EventType distinguishes key presses from releases.
type EventType uint8

const (
	// KeyDown is a key press.
	KeyDown EventType = iota + 1

	// KeyUp is a key release.
	KeyUp
)

// String returns the DOM event name.
func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Target is the element an event was delivered to.
// It is consulted by input filters only.
type Target interface {
	// TagName returns the uppercase element tag, e.g. "INPUT".
	TagName() string

	// IsContentEditable reports whether the element accepts free text.
	IsContentEditable() bool

	// IsReadOnly reports whether a form control is read-only.
	IsReadOnly() bool
}

// Event represents a single native key event.
type Event struct {
	// Type is KeyDown or KeyUp.
	Type EventType

	// KeyCode, Which and CharCode carry the raw code.
	// The first non-zero one wins, see Code.
	KeyCode  Code
	Which    Code
	CharCode Code

	// Key is the DOM key value, e.g. "a", "Meta", "Enter".
	Key string

	// Target is the element that received the event. May be nil.
	Target Target

	// Native modifier flags at the time of the event.
	ShiftKey bool
	CtrlKey  bool
	AltKey   bool
	MetaKey  bool

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates an event for code with the current timestamp.
func NewEvent(typ EventType, code Code, mods Modifier) *Event {
	return &Event{
		Type:      typ,
		KeyCode:   code,
		Key:       domKey(code),
		ShiftKey:  mods.HasShift(),
		CtrlKey:   mods.HasCtrl(),
		AltKey:    mods.HasAlt(),
		MetaKey:   mods.HasMeta(),
		Timestamp: time.Now(),
	}
}

// domKey returns the DOM key value browsers report for a code.
func domKey(c Code) string {
	switch Normalize(c) {
	case CodeShift:
		return "Shift"
	case CodeCtrl:
		return "Control"
	case CodeAlt:
		return "Alt"
	case CodeMeta:
		return "Meta"
	}
	return Name(c)
}

// IsMeta reports whether the event's key value names the meta key.
func (e *Event) IsMeta() bool {
	return strings.EqualFold(e.Key, "meta")
}

// Code returns the raw key code: KeyCode, else Which, else CharCode.
func (e *Event) Code() Code {
	switch {
	case e.KeyCode != CodeNone:
		return e.KeyCode
	case e.Which != CodeNone:
		return e.Which
	default:
		return e.CharCode
	}
}

// Modifiers folds the native flags into a bitmask.
func (e *Event) Modifiers() Modifier {
	var m Modifier
	m = m.Set(ModShift, e.ShiftKey)
	m = m.Set(ModCtrl, e.CtrlKey)
	m = m.Set(ModAlt, e.AltKey)
	m = m.Set(ModMeta, e.MetaKey)
	return m
}

// Flag returns the native flag for a modifier code.
func (e *Event) Flag(c Code) bool {
	switch Normalize(c) {
	case CodeShift:
		return e.ShiftKey
	case CodeCtrl:
		return e.CtrlKey
	case CodeAlt:
		return e.AltKey
	case CodeMeta:
		return e.MetaKey
	}
	return false
}

// PreventDefault suppresses the default action of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation stops the event from reaching further listeners.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// SetReturnValue is the legacy form of PreventDefault.
// Passing false prevents the default action.
func (e *Event) SetReturnValue(v bool) {
	if !v {
		e.defaultPrevented = true
	}
}

// SetCancelBubble is the legacy form of StopPropagation.
func (e *Event) SetCancelBubble(v bool) {
	if v {
		e.propagationStopped = true
	}
}

// DefaultPrevented reports whether the default action was suppressed.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether propagation was stopped.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// Cancel invokes both the standard and legacy cancellation APIs.
func (e *Event) Cancel() {
	e.PreventDefault()
	e.SetReturnValue(false)
	e.StopPropagation()
	e.SetCancelBubble(true)
}

// String returns a compact representation like "keydown ctrl+k".
func (e *Event) String() string {
	name := e.Key
	if name == "" {
		name = Name(Normalize(e.Code()))
	}
	if mods := e.Modifiers().String(); mods != "" {
		return fmt.Sprintf("%s %s(%s)", e.Type, name, mods)
	}
	return fmt.Sprintf("%s %s", e.Type, name)
}
