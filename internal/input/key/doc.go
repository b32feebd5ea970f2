// Package key provides key codes, modifier handling and shortcut parsing
// for the hotkey engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: Identifies a physical key using the browser keyCode space
//   - Modifier: Bitmask of the four tracked modifiers (Shift, Ctrl, Alt, Meta)
//   - Event: A single keydown or keyup with native modifier flags
//   - Shortcut: A parsed "+"-joined combination such as "ctrl+shift+k"
//
// # Key Names
//
// Key names are resolved case-insensitively:
//
//   - Named keys: "enter", "esc", "pageup", "f5", ",", "/"
//   - Modifiers: "shift", "ctrl", "alt", "option", "cmd", "command", "⌘"
//   - Anything else: the character code of the uppercased first character
//
// Resolution never fails. Unknown names fall through to a character-code
// guess, so "ctrl+é" and "ctrl+foo" are accepted as written.
//
// # Shortcut Specs
//
// A shortcut spec is a comma-separated list of shortcuts. Whitespace is
// ignored and a trailing comma names the "," key itself:
//
//	"ctrl+s, cmd+s"   two shortcuts
//	"ctrl+,"          Ctrl plus the comma key
//	"*"               wildcard, matches any primary key
package key
