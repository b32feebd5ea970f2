// Package app wires configuration, the dispatch engine, keymaps, scripts
// and the terminal together.
package app

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dshills/hotkeys/internal/action"
	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/dispatcher"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/logging"
	luaplugin "github.com/dshills/hotkeys/internal/plugin/lua"
)

// Options configures the application. Non-empty fields override the
// configuration file.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	// Keymaps and Scripts are loaded after the configured ones.
	Keymaps []string
	Scripts []string

	// Scope overrides engine.default_scope.
	Scope string

	// LogLevel overrides logging.level.
	LogLevel string

	// Version is reported in logs and the status view.
	Version string

	// Logger replaces the configured logger.
	Logger *slog.Logger
}

// Application is the central coordinator.
type Application struct {
	cfg    config.Config
	opts   Options
	logger *slog.Logger

	engine  *dispatcher.Engine
	router  *action.Router
	loader  *keymap.Loader
	scripts *luaplugin.Host

	term    *backend.Terminal
	feeder  *backend.Feeder
	watcher *config.Watcher

	// loadErrors collects keymap and script failures from startup.
	loadErrors []error

	showKeys bool
	lastFire string
	quitting bool

	running  atomic.Bool
	closeLog func() error
}

// New loads the configuration and builds the application.
func New(opts Options) (*Application, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig builds the application from an already loaded
// configuration.
func NewWithConfig(cfg config.Config, opts Options) (*Application, error) {
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Scope != "" {
		cfg.Engine.DefaultScope = opts.Scope
	}
	cfg.Keymaps.Paths = append(cfg.Keymaps.Paths, opts.Keymaps...)
	cfg.Plugins.Scripts = append(cfg.Plugins.Scripts, opts.Scripts...)

	a := &Application{
		cfg:      cfg,
		opts:     opts,
		closeLog: func() error { return nil },
	}

	if opts.Logger != nil {
		a.logger = opts.Logger
	} else {
		logger, closeFn, err := logging.New(cfg.Logging, "hotkeys", opts.Version)
		if err != nil {
			return nil, &InitError{Component: "logging", Err: err}
		}
		a.logger, a.closeLog = logger, closeFn
	}

	a.bootstrap()
	return a, nil
}

// bootstrap builds the engine and loads keymaps and scripts. Load failures
// are logged and collected, not fatal.
func (a *Application) bootstrap() {
	ec := dispatcher.DefaultConfig().
		WithInitialScope(a.cfg.Engine.DefaultScope).
		WithPanicRecovery(a.cfg.Engine.RecoverPanics)
	if a.cfg.Engine.Metrics {
		ec = ec.WithMetrics()
	}
	ec.DisableFilter = a.cfg.Engine.Filter == config.FilterNone

	a.engine = dispatcher.New(ec, dispatcher.WithLogger(a.logger))
	a.engine.RegisterPostHook(dispatcher.PostFireFunc(a.recordFire))

	a.router = action.NewRouter(a.logger)
	action.RegisterBuiltins(a.router, a.engine, a.Quit)
	a.router.RegisterFunc("keys.list", func(action.Action) (keymap.Result, error) {
		a.showKeys = !a.showKeys
		return keymap.Suppress, nil
	})

	a.loader = keymap.NewLoader()
	a.loader.OnWarning(func(path string, err error) {
		a.logger.Warn("keymap skipped", "path", path, "error", err)
		a.loadErrors = append(a.loadErrors, &LoadError{Kind: "keymap", Path: path, Err: err})
	})

	if a.cfg.Keymaps.Builtin {
		a.BindKeymap(keymap.Default())
	}
	for _, p := range a.cfg.Keymaps.Paths {
		a.loader.AddSearchPath(absPath(p))
	}
	for _, km := range a.loadAll() {
		a.BindKeymap(km)
	}

	var stateOpts []luaplugin.StateOption
	if a.cfg.Plugins.TimeoutMS > 0 {
		stateOpts = append(stateOpts, luaplugin.WithExecutionTimeout(msDuration(a.cfg.Plugins.TimeoutMS)))
	}
	a.scripts = luaplugin.NewHost(a.engine, a.router, stateOpts...)
	for _, p := range a.cfg.Plugins.Scripts {
		if err := a.scripts.LoadFile(p); err != nil {
			a.logger.Warn("script failed", "path", p, "error", err)
			a.loadErrors = append(a.loadErrors, &LoadError{Kind: "script", Path: p, Err: err})
		}
	}

	a.logger.Info("engine ready",
		"scope", a.engine.GetScope(),
		"bindings", len(a.engine.Bindings()),
		"errors", len(a.loadErrors))
}

func (a *Application) loadAll() []*keymap.Keymap {
	kms, err := a.loader.LoadAll()
	if err != nil {
		a.logger.Warn("keymaps incomplete", "error", err)
	}
	return kms
}

// recordFire keeps the last fired handler for the status view.
func (a *Application) recordFire(_ *key.Event, h *keymap.Handler, result keymap.Result) {
	target := h.Action
	if target == "" {
		target = h.Source
	}
	a.lastFire = fmt.Sprintf("%s -> %s (%s)", h.Shortcut, target, result)
}

// Engine returns the dispatch engine.
func (a *Application) Engine() *dispatcher.Engine {
	return a.engine
}

// Router returns the action router.
func (a *Application) Router() *action.Router {
	return a.router
}

// Scripts returns the Lua host.
func (a *Application) Scripts() *luaplugin.Host {
	return a.scripts
}

// Config returns the effective configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// LoadErrors returns keymap and script failures seen so far.
func (a *Application) LoadErrors() []error {
	return append([]error(nil), a.loadErrors...)
}

// Quit asks the event loop to stop after the current event.
func (a *Application) Quit() {
	a.quitting = true
	if a.term != nil && a.running.Load() {
		a.term.Interrupt(quitRequest{})
	}
}

// Shutdown releases the watcher, the Lua state and the log file.
func (a *Application) Shutdown() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
	if a.scripts != nil {
		_ = a.scripts.Close()
	}
	return a.closeLog()
}
