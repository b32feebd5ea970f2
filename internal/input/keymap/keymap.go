package keymap

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Event phase names accepted by Binding.On.
const (
	OnKeydown = "keydown"
	OnKeyup   = "keyup"
	OnBoth    = "both"
)

// ErrEmptyKeys is returned when a binding has no shortcut spec.
var ErrEmptyKeys = errors.New("empty keys")

// ErrEmptyAction is returned when a binding names no action.
var ErrEmptyAction = errors.New("empty action")

// Keymap is a named set of bindings, typically loaded from a file.
type Keymap struct {
	// Name is the keymap identifier.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Scope is the default scope for bindings that do not set one.
	// Empty means the engine's active scope at registration time.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty" toml:"scope,omitempty"`

	// Source indicates where this keymap was defined.
	// Set by the loader to the file path.
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`

	// Bindings are the shortcut-to-action mappings.
	Bindings []Binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// Binding maps a shortcut spec to an action name.
type Binding struct {
	// Keys is a comma-separated shortcut spec, e.g. "ctrl+s, cmd+s".
	Keys string `json:"keys" yaml:"keys" toml:"keys"`

	// Action is the action to run, e.g. "scope.set".
	Action string `json:"action" yaml:"action" toml:"action"`

	// Args are fixed arguments for the action.
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`

	// Scope overrides the keymap scope.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty" toml:"scope,omitempty"`

	// On selects the event phase: "keydown" (default), "keyup" or "both".
	On string `json:"on,omitempty" yaml:"on,omitempty" toml:"on,omitempty"`

	// Description documents the binding.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// InScope sets the default scope for this keymap.
func (k *Keymap) InScope(scope string) *Keymap {
	k.Scope = scope
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:   keys,
		Action: action,
	})
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are usable.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if len(key.SplitSpec(b.Keys)) == 0 {
			return fmt.Errorf("binding %d: %w", i, ErrEmptyKeys)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, ErrEmptyAction)
		}
		if _, _, err := b.Phases(); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// ScopeFor returns the effective scope of binding b.
func (k *Keymap) ScopeFor(b Binding) string {
	if b.Scope != "" {
		return b.Scope
	}
	return k.Scope
}

// Phases returns whether the binding fires on keydown and keyup.
func (b Binding) Phases() (keydown, keyup bool, err error) {
	switch b.On {
	case "", OnKeydown:
		return true, false, nil
	case OnKeyup:
		return false, true, nil
	case OnBoth:
		return true, true, nil
	}
	return false, false, fmt.Errorf("unknown event phase %q", b.On)
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Scope:    k.Scope,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
	}
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = maps.Clone(b.Args)
		}
	}
	return clone
}
