package action

import (
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// ScopeController is the part of the engine the scope actions drive.
type ScopeController interface {
	SetScope(name string)
	GetScope() string
	DeleteScope(sc, fallback string) int
	Scopes() *scope.Manager
}

// ScopeHandler implements the "scope" namespace:
//
//	scope.set     args: scope
//	scope.reset   activate the global scope
//	scope.push    args: scope; save the active scope and switch
//	scope.pop     restore the last pushed scope
//	scope.delete  args: scope, fallback
type ScopeHandler struct {
	ctl ScopeController
}

// NewScopeHandler creates the scope namespace handler.
func NewScopeHandler(ctl ScopeController) *ScopeHandler {
	return &ScopeHandler{ctl: ctl}
}

// Namespace implements NamespaceHandler.
func (h *ScopeHandler) Namespace() string {
	return "scope"
}

// CanHandle implements NamespaceHandler.
func (h *ScopeHandler) CanHandle(name string) bool {
	switch ExtractActionName(name) {
	case "set", "reset", "push", "pop", "delete":
		return true
	}
	return false
}

// HandleAction implements NamespaceHandler.
func (h *ScopeHandler) HandleAction(a Action) (keymap.Result, error) {
	switch ExtractActionName(a.Name) {
	case "set":
		name := a.StringArg("scope", "")
		if name == "" {
			return keymap.Continue, argError(a, "missing scope")
		}
		h.ctl.SetScope(name)
	case "reset":
		h.ctl.SetScope(scope.All)
	case "push":
		name := a.StringArg("scope", "")
		if name == "" {
			return keymap.Continue, argError(a, "missing scope")
		}
		h.ctl.Scopes().Push(name)
	case "pop":
		if err := h.ctl.Scopes().Pop(); err != nil {
			return keymap.Continue, err
		}
	case "delete":
		h.ctl.DeleteScope(a.StringArg("scope", ""), a.StringArg("fallback", ""))
	}
	return keymap.Suppress, nil
}

// RegisterBuiltins registers the scope namespace and "app.quit".
// quit may be nil, in which case "app.quit" is not registered.
func RegisterBuiltins(r *Router, ctl ScopeController, quit func()) {
	r.RegisterNamespace(NewScopeHandler(ctl))
	if quit != nil {
		r.RegisterFunc("app.quit", func(Action) (keymap.Result, error) {
			quit()
			return keymap.Suppress, nil
		})
	}
}
