package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// HandleKeyDown processes a keydown event.
func (e *Engine) HandleKeyDown(ev *key.Event) {
	e.dispatch(ev)
}

// HandleKeyUp processes a keyup event, then releases the key.
func (e *Engine) HandleKeyUp(ev *key.Event) {
	e.dispatch(ev)
	e.state.Release(ev)
}

// HandleFocus flushes pressed keys when the window regains focus.
func (e *Engine) HandleFocus() {
	e.state.Flush()
}

// Dispatch routes ev to HandleKeyDown or HandleKeyUp by its type.
// Event sources that do not go through dom elements call this directly.
func (e *Engine) Dispatch(ev *key.Event) {
	switch ev.Type {
	case key.KeyDown:
		e.HandleKeyDown(ev)
	case key.KeyUp:
		e.HandleKeyUp(ev)
	}
}

func (e *Engine) dispatch(ev *key.Event) {
	if e.filter != nil && !e.filter(ev) {
		if e.metrics != nil {
			e.metrics.RecordFiltered()
		}
		return
	}
	if !e.runPreHooks(ev) {
		return
	}

	start := time.Now()
	e.depth++
	defer func() {
		e.depth--
		if e.metrics != nil {
			e.metrics.RecordEvent(time.Since(start))
		}
	}()

	code := key.Normalize(ev.Code())
	e.state.Press(code)

	if code.IsModifier() {
		e.state.SetModifier(code, true)
		if !e.registry.HasLive(key.CodeWildcard) {
			return
		}
	}

	e.state.UpdateFromEvent(ev)
	active := e.GetScope()

	// Buckets are walked by index so that handlers unbound by a callback
	// are seen as tombstones and handlers bound by it are reached.
	for i := 0; i < e.registry.Len(key.CodeWildcard); i++ {
		h := e.registry.At(key.CodeWildcard, i)
		if h == nil || !h.FiresOn(ev.Type) {
			continue
		}
		e.fire(ev, h, active)
	}

	if !e.registry.HasBucket(code) {
		return
	}

	for i := 0; i < e.registry.Len(code); i++ {
		h := e.registry.At(code, i)
		if h == nil || !h.FiresOn(ev.Type) {
			continue
		}
		if !e.state.Matches(key.Codes(h.Shortcut)) {
			continue
		}
		e.fire(ev, h, active)
	}
}

// fire applies the scope check and modifier gate, then runs the callback.
func (e *Engine) fire(ev *key.Event, h *keymap.Handler, active string) {
	if !scope.Matches(h.Scope, active) {
		return
	}
	if !e.modifierGate(h) {
		return
	}

	start := time.Now()
	result := e.call(ev, h)
	if result == keymap.Suppress {
		ev.Cancel()
	}

	if e.metrics != nil {
		e.metrics.RecordFire(h.Shortcut, time.Since(start), result)
	}
	e.logger.Debug("fire",
		"shortcut", h.Shortcut,
		"scope", h.Scope,
		"event", ev.String(),
		"result", result.String(),
	)
	e.runPostHooks(ev, h, result)
}

// modifierGate reports whether the held modifiers allow h to fire.
// A bare handler needs no modifiers held. A handler with declared
// modifiers needs exactly those held. The plain wildcard is exempt.
func (e *Engine) modifierGate(h *keymap.Handler) bool {
	if h.Shortcut == key.Wildcard {
		return true
	}
	held := e.state.Modifiers()
	if len(h.Mods) == 0 {
		return held.IsEmpty()
	}
	return h.Modifiers() == held
}

// call invokes the callback, recovering panics when configured.
func (e *Engine) call(ev *key.Event, h *keymap.Handler) (result keymap.Result) {
	if !e.config.RecoverFromPanic {
		return h.Call(ev)
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			e.logger.Error("handler panic",
				"shortcut", h.Shortcut,
				"scope", h.Scope,
				"error", fmt.Errorf("%w: %v", ErrPanic, r),
				"stack", string(stack[:n]),
			)
			if e.metrics != nil {
				e.metrics.RecordPanic(h.Shortcut)
			}
			result = keymap.Continue
		}
	}()

	return h.Call(ev)
}

// Trigger runs every live handler bound to a shortcut of spec in sc
// without a key event. Callbacks receive a synthetic keydown built from the
// shortcut. An empty sc means scope.All. Pressed keys, the modifier gate
// and the active scope are ignored. Returns the number of handlers run.
func (e *Engine) Trigger(spec, sc string) int {
	if sc == "" {
		sc = scope.All
	}

	e.depth++
	defer func() { e.depth-- }()

	fired := 0
	for _, parsed := range key.ParseSpec(spec) {
		for i := 0; i < e.registry.Len(parsed.Code); i++ {
			h := e.registry.At(parsed.Code, i)
			if h == nil || h.Scope != sc || h.Shortcut != parsed.Text {
				continue
			}

			code := h.Code
			if code == key.CodeWildcard {
				code = key.CodeNone
			}
			ev := key.NewEvent(key.KeyDown, code, h.Modifiers())

			result := e.call(ev, h)
			if e.metrics != nil {
				e.metrics.RecordFire(h.Shortcut, 0, result)
			}
			e.runPostHooks(ev, h, result)
			fired++
		}
	}
	return fired
}
