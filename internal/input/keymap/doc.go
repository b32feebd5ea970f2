// Package keymap stores shortcut handlers and loads declarative keymap files.
//
// # Handlers
//
// A Handler is one shortcut bound to one callback in one scope. The Registry
// groups handlers into buckets keyed by the primary key code, with all
// wildcard handlers sharing the CodeWildcard bucket. Handlers within a bucket
// keep registration order, which is also firing order.
//
// # Tombstones
//
// Removing a handler does not shrink its bucket. The slot is replaced with a
// nil tombstone so that a dispatch walking the bucket by index never skips or
// repeats a handler when a callback unbinds itself or a neighbour. Tombstones
// accumulate under heavy bind/unbind churn; call Registry.Compact between
// dispatches to reclaim them.
//
// # Keymap Files
//
// A Keymap is a named list of bindings from shortcut specs to action names,
// loaded from JSON, YAML or TOML:
//
//	name = "editor"
//	scope = "editor"
//
//	[[bindings]]
//	keys = "ctrl+s, cmd+s"
//	action = "file.save"
//
// Bindings carry no code. The caller resolves each action name to a callback
// when registering the keymap with an engine.
package keymap
