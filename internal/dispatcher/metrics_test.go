package dispatcher

import (
	"testing"
	"time"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

func TestMetricsRecordFire(t *testing.T) {
	m := NewMetrics()

	m.RecordFire("ctrl+s", 2*time.Millisecond, keymap.Continue)
	m.RecordFire("ctrl+s", 4*time.Millisecond, keymap.Suppress)
	m.RecordFire("a", time.Millisecond, keymap.Continue)

	stats := m.ShortcutStats("ctrl+s")
	if stats == nil {
		t.Fatal("ShortcutStats(ctrl+s) = nil")
	}
	if stats.FireCount != 2 {
		t.Errorf("FireCount = %d, want 2", stats.FireCount)
	}
	if stats.MinDuration != 2*time.Millisecond || stats.MaxDuration != 4*time.Millisecond {
		t.Errorf("Min/Max = %v/%v, want 2ms/4ms", stats.MinDuration, stats.MaxDuration)
	}
	if got := stats.AverageFireDuration(); got != 3*time.Millisecond {
		t.Errorf("AverageFireDuration() = %v, want 3ms", got)
	}
	if got := stats.SuppressRate(); got != 50 {
		t.Errorf("SuppressRate() = %v, want 50", got)
	}
	if stats.LastResult != keymap.Suppress {
		t.Errorf("LastResult = %v, want %v", stats.LastResult, keymap.Suppress)
	}

	if m.ShortcutStats("missing") != nil {
		t.Error("ShortcutStats(missing) should be nil")
	}
}

func TestMetricsTopShortcuts(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 3; i++ {
		m.RecordFire("b", 0, keymap.Continue)
	}
	m.RecordFire("a", 0, keymap.Continue)
	m.RecordFire("c", 0, keymap.Continue)

	top := m.TopShortcuts(2)
	if len(top) != 2 {
		t.Fatalf("len(TopShortcuts(2)) = %d, want 2", len(top))
	}
	if top[0].Shortcut != "b" || top[1].Shortcut != "a" {
		t.Errorf("TopShortcuts(2) = [%s %s], want [b a]", top[0].Shortcut, top[1].Shortcut)
	}

	if got := len(m.TopShortcuts(10)); got != 3 {
		t.Errorf("len(TopShortcuts(10)) = %d, want 3", got)
	}
}

func TestMetricsSnapshotAndReset(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent(10 * time.Millisecond)
	m.RecordEvent(20 * time.Millisecond)
	m.RecordFiltered()
	m.RecordFire("a", 0, keymap.Continue)
	m.RecordPanic("a")

	snap := m.Snapshot()
	if snap.TotalEvents != 2 || snap.TotalFiltered != 1 || snap.TotalFired != 1 || snap.TotalPanics != 1 {
		t.Errorf("Snapshot() = %+v", snap)
	}
	if snap.AverageDuration != 15*time.Millisecond {
		t.Errorf("AverageDuration = %v, want 15ms", snap.AverageDuration)
	}
	if m.ShortcutStats("a").PanicCount != 1 {
		t.Error("RecordPanic() did not count against the shortcut")
	}

	m.Reset()
	if m.TotalEvents() != 0 || m.AverageDuration() != 0 || m.Snapshot().ShortcutCount != 0 {
		t.Error("Reset() left data behind")
	}
}

func TestConfigBuilders(t *testing.T) {
	c := DefaultConfig()
	if !c.RecoverFromPanic || c.EnableMetrics || c.InitialScope != "all" {
		t.Errorf("DefaultConfig() = %+v", c)
	}

	c = c.WithMetrics().WithPanicRecovery(false).WithInitialScope("editor")
	if !c.EnableMetrics || c.RecoverFromPanic || c.InitialScope != "editor" {
		t.Errorf("builders produced %+v", c)
	}
}
