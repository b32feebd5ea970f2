// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Sink selects where log records go.
type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Config configures the logger.
type Config struct {
	Level     string `toml:"level"`
	Format    Format `toml:"format"`
	Sink      Sink   `toml:"sink"`
	File      string `toml:"file"`
	AddSource bool   `toml:"add_source"`

	MaxSizeMB  int  `toml:"max_size_mb"`
	MaxBackups int  `toml:"max_backups"`
	MaxAgeDays int  `toml:"max_age_days"`
	Compress   bool `toml:"compress"`
}

// DefaultConfig logs warnings and errors as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     FormatText,
		Sink:       SinkStderr,
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Normalize lowercases the enum fields and clamps negative rotation limits.
func (c Config) Normalize() (Config, error) {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	c.Format = Format(strings.ToLower(strings.TrimSpace(string(c.Format))))
	c.Sink = Sink(strings.ToLower(strings.TrimSpace(string(c.Sink))))
	c.File = strings.TrimSpace(c.File)
	c.MaxSizeMB = max(c.MaxSizeMB, 0)
	c.MaxBackups = max(c.MaxBackups, 0)
	c.MaxAgeDays = max(c.MaxAgeDays, 0)
	return c, c.Validate()
}

// Validate checks the enum fields. Empty values mean the default.
func (c Config) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: invalid %q", c.Level)
	}
	switch c.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("logging.format: invalid %q", c.Format)
	}
	switch c.Sink {
	case "", SinkStderr, SinkFile, SinkNone:
	default:
		return fmt.Errorf("logging.sink: invalid %q", c.Sink)
	}
	if c.Sink == SinkFile && c.File == "" {
		return fmt.Errorf("logging.file: required when sink is %q", SinkFile)
	}
	return nil
}

// New builds a logger. The returned close function releases the log file
// and is never nil.
func New(cfg Config, app, version string) (*slog.Logger, func() error, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, nil, err
	}

	w, closeFn, err := resolveWriter(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(
		slog.String("app", app),
		slog.String("version", version),
	)
	return logger, closeFn, nil
}

// Init builds a logger and installs it as the slog default.
func Init(cfg Config, app, version string) (func() error, error) {
	logger, closeFn, err := New(cfg, app, version)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level. Unknown names are Info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(cfg Config) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkFile:
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		return rot, rot.Close, nil
	default:
		return os.Stderr, noop, nil
	}
}
