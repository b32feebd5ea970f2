package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per-shortcut metrics
	shortcutMetrics map[string]*ShortcutMetrics

	// Global counters
	totalEvents     uint64
	totalFiltered   uint64
	totalFired      uint64
	totalSuppressed uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// ShortcutMetrics holds metrics for a specific shortcut.
type ShortcutMetrics struct {
	Shortcut      string
	FireCount     uint64
	SuppressCount uint64
	PanicCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastResult    keymap.Result
	LastFired     time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		shortcutMetrics: make(map[string]*ShortcutMetrics),
	}
}

// RecordEvent records a dispatched key event and its total handling time.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalEvents++
	m.totalDuration += duration
}

// RecordFiltered records an event dropped by the filter.
func (m *Metrics) RecordFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalFiltered++
}

// RecordFire records a handler invocation.
func (m *Metrics) RecordFire(shortcut string, duration time.Duration, result keymap.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalFired++
	if result == keymap.Suppress {
		m.totalSuppressed++
	}

	sm := m.shortcutMetrics[shortcut]
	if sm == nil {
		sm = &ShortcutMetrics{
			Shortcut:    shortcut,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.shortcutMetrics[shortcut] = sm
	}

	sm.FireCount++
	sm.TotalDuration += duration
	sm.LastResult = result
	sm.LastFired = time.Now()

	if duration < sm.MinDuration {
		sm.MinDuration = duration
	}
	if duration > sm.MaxDuration {
		sm.MaxDuration = duration
	}
	if result == keymap.Suppress {
		sm.SuppressCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(shortcut string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	if sm := m.shortcutMetrics[shortcut]; sm != nil {
		sm.PanicCount++
	}
}

// TotalEvents returns the number of events that passed the filter.
func (m *Metrics) TotalEvents() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalEvents
}

// TotalFiltered returns the number of events dropped by the filter.
func (m *Metrics) TotalFiltered() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFiltered
}

// TotalFired returns the number of handler invocations.
func (m *Metrics) TotalFired() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFired
}

// TotalSuppressed returns the number of invocations that returned Suppress.
func (m *Metrics) TotalSuppressed() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalSuppressed
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the average event handling duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalEvents == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalEvents)
}

// ShortcutStats returns metrics for a specific shortcut.
func (m *Metrics) ShortcutStats(shortcut string) *ShortcutMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sm := m.shortcutMetrics[shortcut]
	if sm == nil {
		return nil
	}

	// Return a copy
	copy := *sm
	return &copy
}

// TopShortcuts returns the top N most fired shortcuts.
func (m *Metrics) TopShortcuts(n int) []*ShortcutMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shortcuts := make([]*ShortcutMetrics, 0, len(m.shortcutMetrics))
	for _, sm := range m.shortcutMetrics {
		copy := *sm
		shortcuts = append(shortcuts, &copy)
	}

	sort.Slice(shortcuts, func(i, j int) bool {
		if shortcuts[i].FireCount != shortcuts[j].FireCount {
			return shortcuts[i].FireCount > shortcuts[j].FireCount
		}
		return shortcuts[i].Shortcut < shortcuts[j].Shortcut
	})

	if n > len(shortcuts) {
		n = len(shortcuts)
	}
	return shortcuts[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shortcutMetrics = make(map[string]*ShortcutMetrics)
	m.totalEvents = 0
	m.totalFiltered = 0
	m.totalFired = 0
	m.totalSuppressed = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalEvents     uint64
	TotalFiltered   uint64
	TotalFired      uint64
	TotalSuppressed uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ShortcutCount   int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalEvents:     m.totalEvents,
		TotalFiltered:   m.totalFiltered,
		TotalFired:      m.totalFired,
		TotalSuppressed: m.totalSuppressed,
		TotalPanics:     m.totalPanics,
		ShortcutCount:   len(m.shortcutMetrics),
		Timestamp:       time.Now(),
	}

	if m.totalEvents > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalEvents)
	}

	return snapshot
}

// AverageFireDuration returns the average callback duration.
func (sm *ShortcutMetrics) AverageFireDuration() time.Duration {
	if sm.FireCount == 0 {
		return 0
	}
	return sm.TotalDuration / time.Duration(sm.FireCount)
}

// SuppressRate returns the share of invocations that suppressed, as a
// percentage.
func (sm *ShortcutMetrics) SuppressRate() float64 {
	if sm.FireCount == 0 {
		return 0
	}
	return float64(sm.SuppressCount) / float64(sm.FireCount) * 100
}
