// Package lua runs user scripts that bind shortcuts.
//
// A State wraps a sandboxed gopher-lua runtime. Scripts reach the engine
// through the preloaded "hotkeys" module, which is also installed as a
// global:
//
//	local hk = require("hotkeys")
//	hk.bind("ctrl+s, cmd+s", "editor", function(ev)
//	    print("save", ev.key)
//	    return false
//	end)
//
// A callback returning false suppresses the event. Any other return value
// lets it continue.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed, and require resolves
// preloaded modules only.
//
// # Concurrency
//
// gopher-lua states are not goroutine-safe. A State must be used from the
// goroutine that drives the engine. Callbacks may bind and unbind
// shortcuts or call trigger, which re-enters the same state.
package lua
