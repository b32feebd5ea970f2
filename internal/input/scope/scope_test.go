package scope

import (
	"errors"
	"testing"
)

func TestManagerDefault(t *testing.T) {
	m := NewManager()

	if got := m.Current(); got != All {
		t.Errorf("Current() = %q, want %q", got, All)
	}
}

func TestManagerSet(t *testing.T) {
	m := NewManager()
	m.Set("editor")

	if got := m.Current(); got != "editor" {
		t.Errorf("Current() = %q, want %q", got, "editor")
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		active string
		want   bool
	}{
		{"editor", "editor", true},
		{All, "editor", true},
		{All, All, true},
		{"dialog", "editor", false},
		{"editor", All, false},
		{"", "editor", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.name, tt.active); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.name, tt.active, got, tt.want)
		}
	}
}

func TestManagerReset(t *testing.T) {
	m := NewManager()

	m.Set("editor")
	m.Reset("")
	if got := m.Current(); got != All {
		t.Errorf("Reset(\"\") Current() = %q, want %q", got, All)
	}

	m.Reset("home")
	if got := m.Current(); got != "home" {
		t.Errorf("Reset(home) Current() = %q, want %q", got, "home")
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	m.Set("editor")

	m.Push("dialog")
	if got := m.Current(); got != "dialog" {
		t.Errorf("Current() after Push = %q, want %q", got, "dialog")
	}
	if m.StackDepth() != 1 {
		t.Errorf("StackDepth() = %d, want 1", m.StackDepth())
	}

	if err := m.Pop(); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	if got := m.Current(); got != "editor" {
		t.Errorf("Current() after Pop = %q, want %q", got, "editor")
	}

	if err := m.Pop(); !errors.Is(err, ErrStackEmpty) {
		t.Errorf("Pop() on empty stack error = %v, want %v", err, ErrStackEmpty)
	}
}

func TestManagerOnChange(t *testing.T) {
	m := NewManager()

	var from, to string
	calls := 0
	unregister := m.OnChange(func(f, t string) {
		from, to = f, t
		calls++
	})

	m.Set("editor")
	if from != All || to != "editor" {
		t.Errorf("callback got (%q, %q), want (%q, %q)", from, to, All, "editor")
	}

	m.Set("editor")
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1 (no-op change)", calls)
	}

	unregister()
	m.Set("dialog")
	if calls != 1 {
		t.Errorf("callback calls after unregister = %d, want 1", calls)
	}
}

func TestManagerCallbackMaySetScope(t *testing.T) {
	m := NewManager()
	m.OnChange(func(from, to string) {
		if to == "transient" {
			m.Set("final")
		}
	})

	m.Set("transient")
	if got := m.Current(); got != "final" {
		t.Errorf("Current() = %q, want %q", got, "final")
	}
}
