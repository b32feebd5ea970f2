package action

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Router routes action names to handlers.
type Router struct {
	mu sync.RWMutex

	// handlers maps exact action names to handlers.
	handlers map[string]Handler

	// namespaces maps a prefix (e.g. "scope" for "scope.set") to a handler.
	namespaces map[string]NamespaceHandler

	// fallback handles unmatched actions.
	fallback Handler

	logger *slog.Logger
}

// NewRouter creates an empty router that logs through logger.
// A nil logger means slog.Default().
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers:   make(map[string]Handler),
		namespaces: make(map[string]NamespaceHandler),
		logger:     logger,
	}
}

// Register adds a handler for an exact action name, replacing any
// previous one.
func (r *Router) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// RegisterFunc adds a handler function for an exact action name.
func (r *Router) RegisterFunc(name string, fn func(Action) (keymap.Result, error)) {
	r.Register(name, HandlerFunc(fn))
}

// Unregister removes the handler for an exact action name.
func (r *Router) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// RegisterNamespace registers a handler for all actions in a namespace.
func (r *Router) RegisterNamespace(h NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the handler for unmatched actions.
func (r *Router) SetFallback(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the handler for an action name.
// Returns nil if no handler is found.
func (r *Router) Route(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.handlers[name]; ok {
		return h
	}

	if ns := extractNamespace(name); ns != "" {
		if h, ok := r.namespaces[ns]; ok && h.CanHandle(name) {
			return namespaceAdapter{h: h}
		}
	}

	return r.fallback
}

// CanRoute reports whether the router has a handler for name.
func (r *Router) CanRoute(name string) bool {
	return r.Route(name) != nil
}

// Run executes an action.
func (r *Router) Run(a Action) (keymap.Result, error) {
	h := r.Route(a.Name)
	if h == nil {
		return keymap.Continue, fmt.Errorf("%w: %s", ErrNoHandler, a.Name)
	}
	return h.Handle(a)
}

// Callback returns a shortcut callback that runs the named action with
// fixed args. Errors are logged and the event continues.
func (r *Router) Callback(name string, args map[string]any) keymap.Callback {
	return func(ev *key.Event, h *keymap.Handler) keymap.Result {
		result, err := r.Run(Action{
			Name:    name,
			Args:    args,
			Event:   ev,
			Handler: h,
		})
		if err != nil {
			r.logger.Warn("action failed", "action", name, "error", err)
			return keymap.Continue
		}
		return result
	}
}

// Names returns the exact action names and namespace prefixes ("ns.*"),
// sorted.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers)+len(r.namespaces))
	for name := range r.handlers {
		names = append(names, name)
	}
	for ns := range r.namespaces {
		names = append(names, ns+".*")
	}
	sort.Strings(names)
	return names
}

// extractNamespace extracts the namespace from "namespace.action" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(name string) string {
	idx := strings.Index(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// ExtractActionName extracts the action name without namespace.
// For "scope.set", returns "set".
func ExtractActionName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}
