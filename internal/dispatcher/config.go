package dispatcher

import (
	"log/slog"

	"github.com/dshills/hotkeys/internal/dom"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// Config holds engine configuration options.
type Config struct {
	// InitialScope is the active scope of a new engine.
	// Empty means scope.All.
	InitialScope string

	// EnableMetrics enables dispatch statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps callbacks in panic recovery. A recovered
	// panic is logged and counted and dispatch moves on to the next handler.
	RecoverFromPanic bool

	// DisableFilter replaces the form-control filter with one that
	// accepts every event.
	DisableFilter bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialScope:     scope.All,
		EnableMetrics:    false,
		RecoverFromPanic: true,
		DisableFilter:    false,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithInitialScope returns a copy of the config with the initial scope set.
func (c Config) WithInitialScope(name string) Config {
	c.InitialScope = name
	return c
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDocument sets the default listener target for binds that name no
// element.
func WithDocument(doc *dom.Document) Option {
	return func(e *Engine) {
		if doc != nil {
			e.document = doc
		}
	}
}

// WithWindow sets the window whose focus flushes pressed keys.
func WithWindow(w *dom.Window) Option {
	return func(e *Engine) {
		if w != nil {
			e.window = w
		}
	}
}

// WithFilter sets the initial event filter.
func WithFilter(f Filter) Option {
	return func(e *Engine) {
		e.filter = f
	}
}
