package app

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/dispatcher"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// keymapSourcePrefix prefixes the Source of handlers bound from keymaps.
const keymapSourcePrefix = "keymap:"

// KeymapSource returns the handler Source for a keymap.
func KeymapSource(km *keymap.Keymap) string {
	src := km.Source
	if src == "" {
		src = km.Name
	}
	return keymapSourcePrefix + src
}

// BindKeymap binds every binding of km to its action and returns the
// number of handlers created.
func (a *Application) BindKeymap(km *keymap.Keymap) int {
	source := KeymapSource(km)
	bound := 0
	for _, b := range km.Bindings {
		keydown, keyup, err := b.Phases()
		if err != nil {
			a.logger.Warn("binding skipped", "keys", b.Keys, "source", source, "error", err)
			continue
		}
		a.engine.Bind(b.Keys, dispatcher.Options{
			Scope:     km.ScopeFor(b),
			NoKeydown: !keydown,
			Keyup:     keyup,
			Action:    b.Action,
			Args:      b.Args,
			Source:    source,
		}, a.router.Callback(b.Action, b.Args))
		bound += len(key.SplitSpec(b.Keys))
	}
	a.logger.Debug("keymap bound", "name", km.Name, "source", source, "handlers", bound)
	return bound
}

// LoadKeymap loads and binds one keymap file.
func (a *Application) LoadKeymap(path string) (int, error) {
	path = absPath(path)
	km, err := a.loader.LoadFile(path)
	if err != nil {
		return 0, &LoadError{Kind: "keymap", Path: path, Err: err}
	}
	return a.BindKeymap(km), nil
}

// Reload replaces everything bound from path. Lua scripts are re-run and
// keymap files re-read. A file that no longer loads stays unbound.
func (a *Application) Reload(path string) error {
	if isScript(path) {
		if err := a.scripts.Reload(path); err != nil {
			return &LoadError{Kind: "script", Path: path, Err: err}
		}
		return nil
	}

	path = absPath(path)
	removed := a.engine.RemoveSource(keymapSourcePrefix + path)
	n, err := a.LoadKeymap(path)
	a.logger.Info("keymap reloaded", "path", path, "removed", removed, "bound", n)
	return err
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lua")
}

// Check reports bindings whose action no handler accepts, and the load
// errors collected at startup.
func (a *Application) Check() []error {
	errs := a.LoadErrors()
	seen := make(map[string]bool)
	for _, h := range a.engine.Bindings() {
		if h.Action == "" || seen[h.Action+h.Source] {
			continue
		}
		seen[h.Action+h.Source] = true
		if !a.router.CanRoute(h.Action) {
			errs = append(errs, fmt.Errorf("%s: unknown action %q", h.Source, h.Action))
		}
	}
	return errs
}

// KeyList describes every live binding, one per line, sorted by scope and
// shortcut.
func (a *Application) KeyList() []string {
	handlers := a.engine.Bindings()
	slices.SortStableFunc(handlers, func(x, y *keymap.Handler) int {
		if c := strings.Compare(x.Scope, y.Scope); c != 0 {
			return c
		}
		return strings.Compare(x.Shortcut, y.Shortcut)
	})

	lines := make([]string, 0, len(handlers))
	for _, h := range handlers {
		target := h.Action
		if target == "" {
			target = "-"
		}
		lines = append(lines, fmt.Sprintf("%-8s %-16s %-20s %s", h.Scope, h.Shortcut, target, h.Source))
	}
	return lines
}

// watchPaths starts watching keymap paths and scripts.
func (a *Application) watchPaths() error {
	w, err := config.NewWatcher(msDuration(a.cfg.Keymaps.DebounceMS), a.logger)
	if err != nil {
		return err
	}
	for _, p := range slices.Concat(a.cfg.Keymaps.Paths, a.cfg.Plugins.Scripts) {
		if err := w.Add(p); err != nil {
			a.logger.Warn("not watching", "path", p, "error", err)
		}
	}
	a.watcher = w
	return nil
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
