// Package action resolves action names from keymap files and scripts to
// code.
//
// Actions are named "namespace.verb", e.g. "scope.set". A Router first
// looks for a handler registered under the exact name, then for a
// namespace handler owning the prefix, then for a fallback.
package action

import (
	"errors"
	"fmt"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Errors returned by Router.Run.
var (
	// ErrNoHandler indicates no handler was found for an action.
	ErrNoHandler = errors.New("action: no handler for action")

	// ErrInvalidArgs indicates an action received unusable arguments.
	ErrInvalidArgs = errors.New("action: invalid arguments")
)

// Action is one invocation of a named action.
type Action struct {
	// Name is the full action name, e.g. "scope.set".
	Name string

	// Args are the binding's fixed arguments.
	Args map[string]any

	// Event is the key event that triggered the action. May be nil.
	Event *key.Event

	// Handler is the shortcut handler that fired. May be nil.
	Handler *keymap.Handler
}

// StringArg returns a string argument or def when absent.
func (a Action) StringArg(name, def string) string {
	if v, ok := a.Args[name].(string); ok {
		return v
	}
	return def
}

// Handler executes actions.
type Handler interface {
	Handle(a Action) (keymap.Result, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(a Action) (keymap.Result, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(a Action) (keymap.Result, error) {
	return f(a)
}

// NamespaceHandler handles every action under a namespace prefix.
type NamespaceHandler interface {
	// Namespace returns the prefix, e.g. "scope".
	Namespace() string

	// CanHandle reports whether the full action name is supported.
	CanHandle(name string) bool

	// HandleAction executes the action.
	HandleAction(a Action) (keymap.Result, error)
}

// namespaceAdapter lets a NamespaceHandler be returned as a Handler.
type namespaceAdapter struct {
	h NamespaceHandler
}

func (n namespaceAdapter) Handle(a Action) (keymap.Result, error) {
	return n.h.HandleAction(a)
}

// argError wraps ErrInvalidArgs with the action name.
func argError(a Action, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", a.Name, ErrInvalidArgs, fmt.Sprintf(format, args...))
}
