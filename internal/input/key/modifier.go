package key

import "strings"

// Modifier represents the set of held modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// ModifierForCode returns the modifier bit for a modifier key code.
// Returns ModNone for non-modifier codes.
func ModifierForCode(c Code) Modifier {
	switch Normalize(c) {
	case CodeShift:
		return ModShift
	case CodeCtrl:
		return ModCtrl
	case CodeAlt:
		return ModAlt
	case CodeMeta:
		return ModMeta
	}
	return ModNone
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Set returns m with mod added when on is true and removed otherwise.
func (m Modifier) Set(mod Modifier, on bool) Modifier {
	if on {
		return m.With(mod)
	}
	return m.Without(mod)
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Codes returns the key codes of the held modifiers in ascending order.
func (m Modifier) Codes() []Code {
	var codes []Code
	for _, c := range ModifierCodes {
		if m.Has(ModifierForCode(c)) {
			codes = append(codes, c)
		}
	}
	return codes
}

// ModifierFromCodes folds modifier codes into a bitmask.
// Non-modifier codes are ignored.
func ModifierFromCodes(codes []Code) Modifier {
	var m Modifier
	for _, c := range codes {
		m = m.With(ModifierForCode(c))
	}
	return m
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}
