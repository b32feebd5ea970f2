package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrPanic wraps a value recovered from a panicking callback.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrDispatching is returned by operations that cannot run while a
	// dispatch is walking the registry.
	ErrDispatching = errors.New("dispatcher: dispatch in progress")
)
