package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoBackend indicates Run was called without a terminal.
	ErrNoBackend = errors.New("no terminal backend")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// LoadError reports a keymap or script that failed to load.
type LoadError struct {
	Kind string // "keymap" or "script"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
