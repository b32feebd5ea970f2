// Package scope tracks the active shortcut scope.
//
// A scope is a named context such as "editor" or "dialog". Handlers are
// bound into a scope and only fire while that scope is active, or when they
// are bound into the global scope All, which is always active.
package scope

import (
	"errors"
	"sync"
)

// All is the global scope. Handlers bound here fire regardless of the
// active scope.
const All = "all"

// ErrStackEmpty is returned by Pop when no scope was pushed.
var ErrStackEmpty = errors.New("scope stack is empty")

// ChangeCallback is called when the active scope changes.
type ChangeCallback func(from, to string)

// Manager holds the active scope and notifies listeners of changes.
type Manager struct {
	mu sync.RWMutex

	// current is the active scope.
	current string

	// stack holds scopes saved by Push.
	stack []string

	// callbacks are notified on scope changes.
	callbacks []ChangeCallback
}

// NewManager creates a manager with All active.
func NewManager() *Manager {
	return &Manager{
		current: All,
		stack:   make([]string, 0, 4),
	}
}

// Current returns the active scope.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set makes name the active scope. Any string is accepted.
func (m *Manager) Set(name string) {
	m.mu.Lock()
	from, callbacks := m.switchLocked(name)
	m.mu.Unlock()

	m.notify(callbacks, from, name)
}

// switchLocked performs the change (must hold lock).
// Returns the old scope and the callbacks to notify.
func (m *Manager) switchLocked(name string) (string, []ChangeCallback) {
	from := m.current
	m.current = name

	if from == name {
		return from, nil
	}

	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	return from, callbacks
}

// notify runs callbacks outside of the lock so they may change scope.
func (m *Manager) notify(callbacks []ChangeCallback, from, to string) {
	for _, cb := range callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}

// Matches reports whether handlers bound into name are eligible while
// active is the active scope: name is active or the global scope.
func Matches(name, active string) bool {
	return name == All || name == active
}

// Reset makes fallback the active scope, or All if fallback is empty.
func (m *Manager) Reset(fallback string) {
	if fallback == "" {
		fallback = All
	}
	m.Set(fallback)
}

// Push saves the active scope and switches to name.
// Use Pop to restore it.
func (m *Manager) Push(name string) {
	m.mu.Lock()
	m.stack = append(m.stack, m.current)
	from, callbacks := m.switchLocked(name)
	m.mu.Unlock()

	m.notify(callbacks, from, name)
}

// Pop restores the most recently pushed scope.
func (m *Manager) Pop() error {
	m.mu.Lock()
	if len(m.stack) == 0 {
		m.mu.Unlock()
		return ErrStackEmpty
	}

	to := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	from, callbacks := m.switchLocked(to)
	m.mu.Unlock()

	m.notify(callbacks, from, to)
	return nil
}

// StackDepth returns the number of pushed scopes.
func (m *Manager) StackDepth() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stack)
}

// OnChange registers a callback for scope changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Preserve indices of later registrations.
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}
