package dispatcher

import (
	"log/slog"
	"slices"

	"github.com/dshills/hotkeys/internal/dom"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/scope"
	"github.com/dshills/hotkeys/internal/input/tracker"
)

// Options controls a Bind call.
type Options struct {
	// Scope is the scope to bind into. Empty means scope.All.
	Scope string

	// Element is the element whose events reach the handler.
	// Nil means the engine's document.
	Element *dom.Element

	// NoKeydown stops the handler firing on keydown, which it does by
	// default. Keyup adds the keyup phase. {Keyup: true} fires on both.
	NoKeydown bool
	Keyup     bool

	// Action and Args are recorded on the handlers for listing.
	Action string
	Args   map[string]any

	// Source records where the binding came from. Empty means "api".
	Source string
}

func (o Options) phases() (keydown, keyup bool) {
	return !o.NoKeydown, o.Keyup
}

// Engine matches key events against bound shortcuts.
type Engine struct {
	registry *keymap.Registry
	state    *tracker.State
	scopes   *scope.Manager

	filter Filter
	config Config

	metrics *Metrics
	logger  *slog.Logger

	document *dom.Document
	window   *dom.Window

	// bound lists the elements that already have listeners attached.
	bound []*dom.Element

	preHooks  []PreDispatchHook
	postHooks []PostFireHook

	// depth counts nested dispatches; non-zero while a bucket is walked.
	depth int
}

// New creates an engine. Without options it listens on a fresh document
// and window and logs through slog.Default().
func New(config Config, opts ...Option) *Engine {
	e := &Engine{
		registry: keymap.NewRegistry(),
		state:    tracker.New(),
		scopes:   scope.NewManager(),
		config:   config,
		logger:   slog.Default(),
		document: dom.NewDocument(),
		window:   dom.NewWindow(),
	}

	if config.DisableFilter {
		e.filter = AllowAll
	} else {
		e.filter = DefaultFilter
	}

	if config.EnableMetrics {
		e.metrics = NewMetrics()
	}

	for _, opt := range opts {
		opt(e)
	}

	if config.InitialScope != "" {
		e.scopes.Set(config.InitialScope)
	}

	e.scopes.OnChange(func(from, to string) {
		e.logger.Debug("scope changed", "from", from, "to", to)
	})

	return e
}

// NewWithDefaults creates an engine with default configuration.
func NewWithDefaults() *Engine {
	return New(DefaultConfig())
}

// Document returns the default listener target.
func (e *Engine) Document() *dom.Document {
	return e.document
}

// Window returns the window whose focus flushes pressed keys.
func (e *Engine) Window() *dom.Window {
	return e.window
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Scopes returns the scope manager.
func (e *Engine) Scopes() *scope.Manager {
	return e.scopes
}

// Bind registers cb for every shortcut in spec and returns the ID shared
// by the created handlers. Bad key names are accepted and resolved
// permissively. An empty spec binds nothing.
func (e *Engine) Bind(spec string, opts Options, cb keymap.Callback) keymap.HandlerID {
	id := keymap.NewHandlerID()

	sc := opts.Scope
	if sc == "" {
		sc = scope.All
	}
	source := opts.Source
	if source == "" {
		source = "api"
	}
	keydown, keyup := opts.phases()

	for _, shortcut := range key.ParseSpec(spec) {
		h := keymap.NewHandler(id, shortcut, sc, cb)
		h.Keydown = keydown
		h.Keyup = keyup
		h.Action = opts.Action
		h.Args = opts.Args
		h.Source = source
		e.registry.Add(h)

		e.logger.Debug("bind",
			"shortcut", h.Shortcut,
			"scope", h.Scope,
			"keydown", keydown,
			"keyup", keyup,
			"id", id.String(),
		)
	}

	target := opts.Element
	if target == nil {
		target = e.document.Element
	}
	e.attach(target)

	return id
}

// attach adds listeners to el once. The window focus listener is added
// with the first element.
func (e *Engine) attach(el *dom.Element) {
	if slices.Contains(e.bound, el) {
		return
	}
	if len(e.bound) == 0 {
		e.window.OnFocus(e.HandleFocus)
	}
	e.bound = append(e.bound, el)

	el.AddEventListener(dom.EventKeydown, e.HandleKeyDown)
	el.AddEventListener(dom.EventKeyup, e.HandleKeyUp)
}

// IsBound reports whether listeners are attached to el.
func (e *Engine) IsBound(el *dom.Element) bool {
	return slices.Contains(e.bound, el)
}

// Unbind removes the shortcuts in spec from the active scope.
// Returns the number of handlers removed.
func (e *Engine) Unbind(spec string) int {
	return e.unbind(spec, e.scopes.Current(), keymap.HandlerID{})
}

// UnbindScope removes the shortcuts in spec from scope.
// An empty scope means the active scope.
func (e *Engine) UnbindScope(spec, sc string) int {
	if sc == "" {
		sc = e.scopes.Current()
	}
	return e.unbind(spec, sc, keymap.HandlerID{})
}

// UnbindHandler removes the handlers created by the Bind call that
// returned id, for the shortcuts in spec, from scope.All.
func (e *Engine) UnbindHandler(spec string, id keymap.HandlerID) int {
	return e.unbind(spec, scope.All, id)
}

// UnbindScopeHandler removes the handlers created by the Bind call that
// returned id, for the shortcuts in spec, from scope.
// An empty scope means the active scope.
func (e *Engine) UnbindScopeHandler(spec, sc string, id keymap.HandlerID) int {
	if sc == "" {
		sc = e.scopes.Current()
	}
	return e.unbind(spec, sc, id)
}

// unbind tombstones matching handlers. A handler matches on primary key,
// modifier set and scope; the shortcut text itself is not compared, so
// "shift+ctrl+a" removes a handler bound as "ctrl+shift+a".
func (e *Engine) unbind(spec, sc string, id keymap.HandlerID) int {
	removed := 0
	for _, shortcut := range key.ParseSpec(spec) {
		removed += e.registry.Remove(keymap.Match{
			Code:  shortcut.Code,
			Mods:  shortcut.Mods,
			Scope: sc,
			ID:    id,
		})
	}
	if removed > 0 {
		e.logger.Debug("unbind", "spec", spec, "scope", sc, "removed", removed)
	}
	return removed
}

// Remove tombstones every handler created by the Bind call that returned
// id, regardless of shortcut or scope.
func (e *Engine) Remove(id keymap.HandlerID) int {
	return e.registry.RemoveID(id)
}

// RemoveSource tombstones every handler bound with the given source.
func (e *Engine) RemoveSource(source string) int {
	return e.registry.RemoveSource(source)
}

// SetScope makes name the active scope. Empty means scope.All.
func (e *Engine) SetScope(name string) {
	if name == "" {
		name = scope.All
	}
	e.scopes.Set(name)
}

// GetScope returns the active scope.
func (e *Engine) GetScope() string {
	if cur := e.scopes.Current(); cur != "" {
		return cur
	}
	return scope.All
}

// DeleteScope removes every handler bound into sc. An empty sc means the
// active scope. If sc was active, fallback becomes active, or scope.All
// when fallback is empty.
func (e *Engine) DeleteScope(sc, fallback string) int {
	if sc == "" {
		sc = e.GetScope()
	}

	removed := e.registry.RemoveScope(sc)
	e.logger.Debug("delete scope", "scope", sc, "removed", removed)

	if e.GetScope() == sc {
		e.scopes.Reset(fallback)
	}
	return removed
}

// IsPressed reports whether code is held.
func (e *Engine) IsPressed(code key.Code) bool {
	return e.state.IsPressed(code)
}

// IsPressedName reports whether the key with the given name is held.
func (e *Engine) IsPressedName(name string) bool {
	return e.state.IsPressed(key.Resolve(name))
}

// GetPressedKeyCodes returns a copy of the held key codes.
func (e *Engine) GetPressedKeyCodes() []key.Code {
	return e.state.Pressed()
}

// ModifierPressed reports whether the named modifier is held,
// e.g. "shift", "ctrl", "option" or "⌘". Unknown names report false.
func (e *Engine) ModifierPressed(name string) bool {
	code := key.ResolveModifier(name)
	if code == key.CodeNone {
		return false
	}
	return e.state.Held(code)
}

// Modifiers returns the held modifiers.
func (e *Engine) Modifiers() key.Modifier {
	return e.state.Modifiers()
}

// SetFilter replaces the event filter. Nil restores DefaultFilter.
func (e *Engine) SetFilter(f Filter) {
	if f == nil {
		f = DefaultFilter
	}
	e.filter = f
}

// Filter returns the event filter.
func (e *Engine) Filter() Filter {
	return e.filter
}

// Bindings returns every live handler.
func (e *Engine) Bindings() []*keymap.Handler {
	return e.registry.Handlers()
}

// Handlers returns the live handlers bound into sc.
func (e *Engine) Handlers(sc string) []*keymap.Handler {
	all := e.registry.Handlers()
	out := make([]*keymap.Handler, 0, len(all))
	for _, h := range all {
		if h.Scope == sc {
			out = append(out, h)
		}
	}
	return out
}

// Tombstones returns the number of removed handler slots awaiting Compact.
func (e *Engine) Tombstones() int {
	return e.registry.Tombstones()
}

// Compact reclaims tombstoned handler slots. It refuses to run from inside
// a callback.
func (e *Engine) Compact() (int, error) {
	if e.depth > 0 {
		return 0, ErrDispatching
	}
	return e.registry.Compact(), nil
}

// Reset forgets pressed keys and modifier state.
func (e *Engine) Reset() {
	e.state.Reset()
}
