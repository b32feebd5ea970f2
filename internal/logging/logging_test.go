package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{Level: " DEBUG ", Format: "JSON", Sink: "None", MaxSizeMB: -1}
	got, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.Level != "debug" || got.Format != FormatJSON || got.Sink != SinkNone {
		t.Errorf("Normalize() = %+v", got)
	}
	if got.MaxSizeMB != 0 {
		t.Errorf("MaxSizeMB = %d, want 0", got.MaxSizeMB)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", DefaultConfig(), ""},
		{"bad level", Config{Level: "loud"}, "logging.level"},
		{"bad format", Config{Format: "xml"}, "logging.format"},
		{"bad sink", Config{Sink: "syslog"}, "logging.sink"},
		{"file without path", Config{Sink: SinkFile}, "logging.file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hotkeys.log")
	cfg := DefaultConfig()
	cfg.Sink = SinkFile
	cfg.File = path
	cfg.Format = FormatJSON
	cfg.Level = "info"

	logger, closeFn, err := New(cfg, "hotkeys", "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("bound", "shortcut", "ctrl+k")
	logger.Debug("hidden")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"shortcut":"ctrl+k"`) || !strings.Contains(out, `"app":"hotkeys"`) {
		t.Errorf("log output = %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
}

func TestNewInvalid(t *testing.T) {
	if _, _, err := New(Config{Sink: "nowhere"}, "hotkeys", "test"); err == nil {
		t.Error("New() with bad sink should fail")
	}
}

func TestNewNoneSink(t *testing.T) {
	logger, closeFn, err := New(Config{Sink: SinkNone}, "hotkeys", "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Error("dropped")
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}
