// Package dispatcher implements the hotkey engine: it tracks pressed keys
// and modifiers, stores handlers by scope, and decides on every key event
// which handlers fire.
//
// # Dispatch
//
// For each keydown or keyup the engine:
//
//  1. Runs the filter. A false result drops the event with no state change.
//  2. Normalizes the key code and records it as pressed (IME code 229 is
//     never recorded).
//  3. For a modifier key, marks the modifier held and stops unless a
//     wildcard handler exists.
//  4. Recomputes all four modifier flags from the event.
//  5. Fires wildcard handlers eligible in the active scope.
//  6. Fires handlers in the primary key's bucket whose full key set equals
//     the pressed set exactly. "ctrl+k" fires for {ctrl, k} and not for
//     {ctrl, shift, k}.
//
// Before firing, a modifier gate applies: a handler that declares no
// modifiers fires only while none are held, and a handler that declares
// modifiers fires only when the held set equals its declared set.
//
// A callback returning keymap.Suppress cancels the event's default action
// and stops its propagation.
//
// # Listeners
//
// Bind attaches keydown, keyup and window focus listeners to its target
// element the first time that element is seen. Later binds on the same
// element reuse the listeners, so one native event is dispatched once.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. All calls, including event
// delivery, must happen on one goroutine. Callbacks may bind, unbind and
// change scope during dispatch. A callback that synthesizes key events
// into the same engine recurses into dispatch with no depth limit; keep
// such chains finite.
package dispatcher
