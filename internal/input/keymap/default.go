package keymap

import "github.com/dshills/hotkeys/internal/input/scope"

// Default returns the built-in keymap used when no keymap files are
// configured.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Scope:  scope.All,
		Source: "default",
		Bindings: []Binding{
			{Keys: "ctrl+q, cmd+q", Action: "app.quit", Description: "Quit"},
			{Keys: "esc", Action: "scope.reset", Description: "Return to the global scope"},
			{Keys: "ctrl+l", Action: "keys.list", Description: "List active shortcuts"},
		},
	}
}
