package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/logging"
)

const testKeymap = `name: test
scope: all
bindings:
  - keys: ctrl+s
    action: scope.set
    args:
      scope: editor
  - keys: ctrl+x
    action: missing.action
`

func newTestApp(t *testing.T, cfg config.Config, opts Options) *Application {
	t.Helper()
	opts.Logger = logging.Discard()
	a, err := NewWithConfig(cfg, opts)
	if err != nil {
		t.Fatalf("NewWithConfig() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func press(a *Application, code key.Code, mods key.Modifier) {
	f := backend.NewFeeder(a.engine.Document().Element, a.engine.Window(), a.logger)
	f.Press(code, mods)
}

func TestNewWithConfig_Builtin(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})

	if a.Engine() == nil || a.Router() == nil || a.Scripts() == nil {
		t.Fatal("expected engine, router and scripts to be initialized")
	}
	if got := len(a.Engine().Bindings()); got != 4 {
		t.Errorf("len(Bindings()) = %d, want 4", got)
	}
	if errs := a.Check(); len(errs) != 0 {
		t.Errorf("Check() = %v, want no errors", errs)
	}
}

func TestNewWithConfig_Overrides(t *testing.T) {
	cfg := config.Default()
	cfg.Keymaps.Builtin = false
	a := newTestApp(t, cfg, Options{Scope: "editor", LogLevel: "debug"})

	if got := a.Engine().GetScope(); got != "editor" {
		t.Errorf("GetScope() = %q, want editor", got)
	}
	if got := a.Config().Logging.Level; got != "debug" {
		t.Errorf("Logging.Level = %q, want debug", got)
	}
	if got := len(a.Engine().Bindings()); got != 0 {
		t.Errorf("len(Bindings()) = %d, want 0", got)
	}
}

func TestKeymapDispatch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.yaml", testKeymap)

	cfg := config.Default()
	cfg.Keymaps.Builtin = false
	a := newTestApp(t, cfg, Options{Keymaps: []string{path}})

	press(a, 'S', key.ModCtrl)
	if got := a.Engine().GetScope(); got != "editor" {
		t.Errorf("GetScope() after ctrl+s = %q, want editor", got)
	}
	if !strings.Contains(a.lastFire, "scope.set") {
		t.Errorf("lastFire = %q, want it to name scope.set", a.lastFire)
	}
}

func TestCheck_UnknownAction(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.yaml", testKeymap)
	writeFile(t, dir, "broken.json", "{")

	cfg := config.Default()
	cfg.Keymaps.Builtin = false
	a := newTestApp(t, cfg, Options{Keymaps: []string{dir}})

	errs := a.Check()
	if len(errs) != 2 {
		t.Fatalf("Check() = %v, want 2 errors", errs)
	}

	var loadErr *LoadError
	if !errors.As(errs[0], &loadErr) || loadErr.Kind != "keymap" {
		t.Errorf("Check()[0] = %v, want keymap LoadError", errs[0])
	}
	if !strings.Contains(errs[1].Error(), "missing.action") {
		t.Errorf("Check()[1] = %v, want unknown action", errs[1])
	}
	if !strings.Contains(errs[1].Error(), absPath(path)) {
		t.Errorf("Check()[1] = %v, want source %s", errs[1], path)
	}
}

func TestReload_Keymap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.toml", `
name = "test"

[[bindings]]
keys = "ctrl+s, cmd+s"
action = "scope.reset"
`)

	cfg := config.Default()
	cfg.Keymaps.Builtin = false
	a := newTestApp(t, cfg, Options{Keymaps: []string{path}})

	if got := len(a.Engine().Bindings()); got != 2 {
		t.Fatalf("len(Bindings()) = %d, want 2", got)
	}

	writeFile(t, dir, "test.toml", `
name = "test"

[[bindings]]
keys = "ctrl+r"
action = "scope.reset"
`)
	if err := a.Reload(path); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	bindings := a.Engine().Bindings()
	if len(bindings) != 1 || bindings[0].Shortcut != "ctrl+r" {
		t.Errorf("Bindings() after reload = %v, want only ctrl+r", bindings)
	}

	writeFile(t, dir, "test.toml", "[[bindings")
	if err := a.Reload(path); err == nil {
		t.Error("Reload() of broken file error = nil, want error")
	}
	if got := len(a.Engine().Bindings()); got != 0 {
		t.Errorf("len(Bindings()) after failed reload = %d, want 0", got)
	}
}

func TestReload_Script(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "init.lua", `
local hotkeys = require("hotkeys")
hotkeys.bind("f2", function() return false end)
`)

	cfg := config.Default()
	cfg.Keymaps.Builtin = false
	a := newTestApp(t, cfg, Options{Scripts: []string{path}})

	if got := len(a.Engine().Bindings()); got != 1 {
		t.Fatalf("len(Bindings()) = %d, want 1", got)
	}
	if err := a.Reload(path); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := len(a.Engine().Bindings()); got != 1 {
		t.Errorf("len(Bindings()) after reload = %d, want 1", got)
	}
}

func TestScriptLoadError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.lua", "this is not lua")

	a := newTestApp(t, config.Default(), Options{Scripts: []string{path}})

	errs := a.LoadErrors()
	if len(errs) != 1 {
		t.Fatalf("LoadErrors() = %v, want 1 error", errs)
	}
	var loadErr *LoadError
	if !errors.As(errs[0], &loadErr) || loadErr.Kind != "script" {
		t.Errorf("LoadErrors()[0] = %v, want script LoadError", errs[0])
	}
}

func TestKeyList(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})

	lines := a.KeyList()
	if len(lines) != 4 {
		t.Fatalf("KeyList() = %v, want 4 lines", lines)
	}
	found := false
	for _, l := range lines {
		if strings.Contains(l, "ctrl+q") && strings.Contains(l, "app.quit") {
			found = true
		}
	}
	if !found {
		t.Errorf("KeyList() = %v, want a ctrl+q app.quit line", lines)
	}
}

func TestKeysListToggle(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{Version: "1.2.3"})

	before := len(a.StatusLines())
	press(a, 'L', key.ModCtrl)
	after := a.StatusLines()
	if len(after) <= before {
		t.Errorf("len(StatusLines()) after ctrl+l = %d, want more than %d", len(after), before)
	}
	if !strings.Contains(after[0], "1.2.3") {
		t.Errorf("StatusLines()[0] = %q, want version", after[0])
	}
}

func TestQuitBinding(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})

	press(a, 'Q', key.ModCtrl)
	if !a.quitting {
		t.Error("expected ctrl+q to request quit")
	}
}

func TestRunWithoutBackend(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})

	err := a.Run(context.Background())
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() error = %v, want ErrNoBackend", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})
	a.SetBackend(backend.NewTerminalWithScreen(tcell.NewSimulationScreen("UTF-8")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Run(ctx); err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
	if a.running.Load() {
		t.Error("expected running to be false after Run")
	}
}

func TestRunTwice(t *testing.T) {
	a := newTestApp(t, config.Default(), Options{})
	a.SetBackend(backend.NewTerminalWithScreen(tcell.NewSimulationScreen("UTF-8")))
	a.running.Store(true)

	if err := a.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Run() error = %v, want ErrAlreadyRunning", err)
	}
}
