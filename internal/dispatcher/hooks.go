package dispatcher

import (
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// PreDispatchHook is called for every event that passed the filter,
// before any state is updated.
type PreDispatchHook interface {
	// PreDispatch returns false to drop the event.
	PreDispatch(ev *key.Event) bool
}

// PostFireHook is called after a handler's callback returned.
type PostFireHook interface {
	PostFire(ev *key.Event, h *keymap.Handler, result keymap.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(ev *key.Event) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(ev *key.Event) bool {
	return f(ev)
}

// PostFireFunc is a function adapter for PostFireHook.
type PostFireFunc func(ev *key.Event, h *keymap.Handler, result keymap.Result)

// PostFire implements PostFireHook.
func (f PostFireFunc) PostFire(ev *key.Event, h *keymap.Handler, result keymap.Result) {
	f(ev, h, result)
}

// RegisterPreHook registers a pre-dispatch hook.
func (e *Engine) RegisterPreHook(hook PreDispatchHook) {
	e.preHooks = append(e.preHooks, hook)
}

// RegisterPostHook registers a post-fire hook.
func (e *Engine) RegisterPostHook(hook PostFireHook) {
	e.postHooks = append(e.postHooks, hook)
}

// runPreHooks returns false if any hook drops the event.
func (e *Engine) runPreHooks(ev *key.Event) bool {
	for _, h := range e.preHooks {
		if !h.PreDispatch(ev) {
			return false
		}
	}
	return true
}

func (e *Engine) runPostHooks(ev *key.Event, h *keymap.Handler, result keymap.Result) {
	for _, hook := range e.postHooks {
		hook.PostFire(ev, h, result)
	}
}
