package keymap

import (
	"github.com/google/uuid"

	"github.com/dshills/hotkeys/internal/input/key"
)

// HandlerID identifies the handlers created by one bind call.
// Function values cannot be compared in Go, so unbinding a specific
// callback goes through the ID returned at bind time.
type HandlerID uuid.UUID

// NewHandlerID returns a fresh random ID.
func NewHandlerID() HandlerID {
	return HandlerID(uuid.New())
}

// ParseHandlerID parses the string form of an ID.
func ParseHandlerID(s string) (HandlerID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return HandlerID{}, err
	}
	return HandlerID(u), nil
}

// IsZero reports whether id is the zero ID.
func (id HandlerID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// String returns the canonical UUID form.
func (id HandlerID) String() string {
	return uuid.UUID(id).String()
}

// Result is returned by a callback to control the native event.
type Result uint8

const (
	// Continue lets the event proceed.
	Continue Result = iota

	// Suppress cancels the event's default action and stops propagation.
	Suppress
)

// String returns the result name.
func (r Result) String() string {
	if r == Suppress {
		return "suppress"
	}
	return "continue"
}

// Callback is invoked when a handler fires.
type Callback func(ev *key.Event, h *Handler) Result

// Handler is a registered shortcut.
type Handler struct {
	// ID identifies the handler for targeted removal. Every handler
	// created from one multi-shortcut spec shares the same ID.
	ID HandlerID

	// Shortcut is the shortcut text, whitespace removed.
	Shortcut string

	// Code is the primary key code. CodeWildcard for "*".
	Code key.Code

	// Mods are the declared modifier codes.
	Mods []key.Code

	// Scope is the scope the handler is bound into.
	Scope string

	// Keydown and Keyup select the event phases the handler fires on.
	Keydown bool
	Keyup   bool

	// Callback runs when the handler fires.
	Callback Callback

	// Action is the action name for handlers created from keymap files
	// or scripts. Empty for handlers bound directly with a callback.
	Action string

	// Args are passed to the action.
	Args map[string]any

	// Source records where the handler came from, e.g. "api",
	// "keymap:editor" or "lua:plugin.lua".
	Source string
}

// NewHandler builds a handler for one parsed shortcut under id.
// The handler fires on keydown only.
func NewHandler(id HandlerID, sc key.Shortcut, scope string, cb Callback) *Handler {
	return &Handler{
		ID:       id,
		Shortcut: sc.Text,
		Code:     sc.Code,
		Mods:     sc.Mods,
		Scope:    scope,
		Keydown:  true,
		Callback: cb,
	}
}

// IsWildcard reports whether the handler is a "*" handler.
func (h *Handler) IsWildcard() bool {
	return h.Code == key.CodeWildcard
}

// Modifiers folds the declared modifier codes into a bitmask.
func (h *Handler) Modifiers() key.Modifier {
	return key.ModifierFromCodes(h.Mods)
}

// FiresOn reports whether the handler fires for the event type.
func (h *Handler) FiresOn(t key.EventType) bool {
	switch t {
	case key.KeyDown:
		return h.Keydown
	case key.KeyUp:
		return h.Keyup
	}
	return false
}

// Call invokes the callback. A nil callback yields Continue.
func (h *Handler) Call(ev *key.Event) Result {
	if h.Callback == nil {
		return Continue
	}
	return h.Callback(ev, h)
}
