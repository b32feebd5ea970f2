// Package hotkeys binds keyboard shortcuts to callbacks.
//
// Shortcuts are written as "+"-joined key names, several per spec
// separated by commas:
//
//	hotkeys.Bind("ctrl+s, cmd+s", hotkeys.Options{}, func(ev *hotkeys.Event, h *hotkeys.Handler) hotkeys.Result {
//		save()
//		return hotkeys.Suppress
//	})
//
// The package functions operate on a process-wide default engine created
// on first use. Programs that need several independent engines create
// them with New. Engines are not safe for concurrent use; deliver events
// and call the engine from a single goroutine.
package hotkeys

import (
	"sync"

	"github.com/dshills/hotkeys/internal/dispatcher"
	"github.com/dshills/hotkeys/internal/dom"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/scope"
)

type (
	// Engine matches key events against bound shortcuts.
	Engine = dispatcher.Engine

	// Config holds engine configuration.
	Config = dispatcher.Config

	// Option configures an Engine.
	Option = dispatcher.Option

	// Options controls a Bind call.
	Options = dispatcher.Options

	// Filter decides whether an event may trigger shortcuts.
	Filter = dispatcher.Filter

	// Event is a native key event.
	Event = key.Event

	// EventType is KeyDown or KeyUp.
	EventType = key.EventType

	// Code identifies a physical key.
	Code = key.Code

	// Modifier is a set of held modifier keys.
	Modifier = key.Modifier

	// Handler is a bound callback.
	Handler = keymap.Handler

	// HandlerID identifies the handlers created by one Bind call.
	HandlerID = keymap.HandlerID

	// Callback is invoked when a shortcut fires.
	Callback = keymap.Callback

	// Result tells the engine what to do with the event after a callback.
	Result = keymap.Result

	// Element, Document and Window are the event sources the engine
	// listens on.
	Element  = dom.Element
	Document = dom.Document
	Window   = dom.Window
)

// Callback results.
const (
	Continue = keymap.Continue
	Suppress = keymap.Suppress
)

// All is the scope whose handlers fire regardless of the active scope.
const All = scope.All

var (
	mu       sync.Mutex
	current  *Engine
	previous *Engine
)

// New creates an independent engine.
func New(config Config, opts ...Option) *Engine {
	return dispatcher.New(config, opts...)
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return dispatcher.DefaultConfig()
}

// DefaultFilter is the filter engines start with.
func DefaultFilter(ev *Event) bool {
	return dispatcher.DefaultFilter(ev)
}

// Default returns the process-wide engine, creating it on first use.
func Default() *Engine {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = dispatcher.NewWithDefaults()
	}
	return current
}

// SetDefault installs e as the process-wide engine and returns the one it
// replaces, which NoConflict can restore. It may return nil.
func SetDefault(e *Engine) *Engine {
	mu.Lock()
	defer mu.Unlock()
	previous = current
	current = e
	return previous
}

// NoConflict returns the current default engine. When deep is true the
// engine installed before it is restored as the default.
func NoConflict(deep bool) *Engine {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = dispatcher.NewWithDefaults()
	}
	e := current
	if deep && previous != nil {
		current, previous = previous, nil
	}
	return e
}

// Bind registers cb for every shortcut in spec on the default engine.
func Bind(spec string, opts Options, cb Callback) HandlerID {
	return Default().Bind(spec, opts, cb)
}

// Unbind removes the shortcuts in spec from the active scope.
func Unbind(spec string) int {
	return Default().Unbind(spec)
}

// UnbindScope removes the shortcuts in spec from scope sc.
func UnbindScope(spec, sc string) int {
	return Default().UnbindScope(spec, sc)
}

// UnbindHandler removes the handlers bound under id from scope All.
func UnbindHandler(spec string, id HandlerID) int {
	return Default().UnbindHandler(spec, id)
}

// UnbindScopeHandler removes the handlers bound under id from scope sc.
func UnbindScopeHandler(spec, sc string, id HandlerID) int {
	return Default().UnbindScopeHandler(spec, sc, id)
}

// SetScope makes name the active scope.
func SetScope(name string) {
	Default().SetScope(name)
}

// GetScope returns the active scope.
func GetScope() string {
	return Default().GetScope()
}

// DeleteScope removes every handler in sc and, if sc is active, switches
// to fallback.
func DeleteScope(sc, fallback string) int {
	return Default().DeleteScope(sc, fallback)
}

// IsPressed reports whether code is held.
func IsPressed(code Code) bool {
	return Default().IsPressed(code)
}

// IsPressedName reports whether the named key is held.
func IsPressedName(name string) bool {
	return Default().IsPressedName(name)
}

// GetPressedKeyCodes returns a copy of the held key codes.
func GetPressedKeyCodes() []Code {
	return Default().GetPressedKeyCodes()
}

// SetFilter replaces the default engine's filter. Nil restores
// DefaultFilter.
func SetFilter(f Filter) {
	Default().SetFilter(f)
}

// Trigger runs the handlers bound to spec in sc without a key event.
func Trigger(spec, sc string) int {
	return Default().Trigger(spec, sc)
}

// Dispatch delivers ev to the default engine's document.
func Dispatch(ev *Event) {
	e := Default()
	if ev.Target == nil {
		ev.Target = e.Document().Element
	}
	e.Document().DispatchEvent(ev)
}

// NewEvent creates a key event for code with mods held.
func NewEvent(typ EventType, code Code, mods Modifier) *Event {
	return key.NewEvent(typ, code, mods)
}

// Event types.
const (
	KeyDown = key.KeyDown
	KeyUp   = key.KeyUp
)

// Modifiers.
const (
	ModShift = key.ModShift
	ModCtrl  = key.ModCtrl
	ModAlt   = key.ModAlt
	ModMeta  = key.ModMeta
)

// Resolve returns the key code for a key name.
func Resolve(name string) Code {
	return key.Resolve(name)
}
