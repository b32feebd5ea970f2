package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/hotkeys/internal/logging"
)

// Filter names accepted by engine.filter.
const (
	FilterDefault = "default"
	FilterNone    = "none"
)

// Config is the full configuration.
type Config struct {
	Logging logging.Config `toml:"logging"`
	Engine  EngineConfig   `toml:"engine"`
	Keymaps KeymapsConfig  `toml:"keymaps"`
	Plugins PluginsConfig  `toml:"plugins"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

// EngineConfig configures the dispatch engine.
type EngineConfig struct {
	DefaultScope  string `toml:"default_scope"`
	Filter        string `toml:"filter"`
	RecoverPanics bool   `toml:"recover_panics"`
	Metrics       bool   `toml:"metrics"`
}

// KeymapsConfig lists keymap files and directories.
type KeymapsConfig struct {
	Paths []string `toml:"paths"`
	Watch bool     `toml:"watch"`

	// DebounceMS coalesces bursts of file events.
	DebounceMS int `toml:"debounce_ms"`

	// Builtin binds the built-in keymap before the configured ones.
	Builtin bool `toml:"builtin"`
}

// PluginsConfig lists Lua scripts.
type PluginsConfig struct {
	Scripts []string `toml:"scripts"`

	// TimeoutMS bounds each script run and callback. Zero disables it.
	TimeoutMS int `toml:"timeout_ms"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Logging: logging.DefaultConfig(),
		Engine: EngineConfig{
			DefaultScope:  "all",
			Filter:        FilterDefault,
			RecoverPanics: true,
		},
		Keymaps: KeymapsConfig{
			DebounceMS: 100,
			Builtin:    true,
		},
		Plugins: PluginsConfig{
			TimeoutMS: 5000,
		},
	}
}

// Validate checks every section and joins the errors.
func (c Config) Validate() error {
	var errs []error
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Engine.Filter {
	case "", FilterDefault, FilterNone:
	default:
		errs = append(errs, fmt.Errorf("engine.filter: invalid %q", c.Engine.Filter))
	}
	if c.Keymaps.DebounceMS < 0 {
		errs = append(errs, errors.New("keymaps.debounce_ms: must not be negative"))
	}
	if c.Plugins.TimeoutMS < 0 {
		errs = append(errs, errors.New("plugins.timeout_ms: must not be negative"))
	}
	return errors.Join(errs...)
}

// ExpandPaths expands "~" and environment variables in every file path.
// Relative paths are resolved against the configuration file directory.
func (c Config) ExpandPaths() Config {
	base := ""
	if c.Path != "" {
		base = filepath.Dir(c.Path)
	}
	expand := func(paths []string) []string {
		out := make([]string, len(paths))
		for i, p := range paths {
			out[i] = ExpandPath(p, base)
		}
		return out
	}
	c.Keymaps.Paths = expand(c.Keymaps.Paths)
	c.Plugins.Scripts = expand(c.Plugins.Scripts)
	if c.Logging.File != "" {
		c.Logging.File = ExpandPath(c.Logging.File, base)
	}
	return c
}

// ExpandPath expands a leading "~" and environment variables, then joins
// relative results onto base.
func ExpandPath(p, base string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	if base != "" && !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return filepath.Clean(p)
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hotkeys.toml"
	}
	return filepath.Join(dir, "hotkeys", "config.toml")
}
