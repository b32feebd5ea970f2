package key

import (
	"slices"
	"strings"
	"unicode"
)

// Shortcut is a parsed "+"-joined key combination.
type Shortcut struct {
	// Text is the shortcut as written, whitespace removed.
	Text string

	// Code is the primary (last segment) key code.
	// CodeWildcard for "*".
	Code Code

	// Mods are the codes of all but the last segment, resolved through the
	// modifier table. Unknown modifier names resolve to CodeNone.
	Mods []Code
}

// IsWildcard returns true if the primary key is "*".
func (s Shortcut) IsWildcard() bool {
	return s.Code == CodeWildcard
}

// Modifiers folds the declared modifier codes into a bitmask.
func (s Shortcut) Modifiers() Modifier {
	return ModifierFromCodes(s.Mods)
}

// SplitSpec splits a comma-separated shortcut spec.
//
// Whitespace is removed first. Empty items produced by a literal comma key
// are folded back into the preceding shortcut, so "ctrl+," yields
// ["ctrl+,"] and "a,," yields ["a", ","]. An empty spec yields no shortcuts.
func SplitSpec(spec string) []string {
	spec = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, spec)

	keys := strings.Split(spec, ",")
	for idx := lastEmpty(keys); idx >= 0; idx = lastEmpty(keys) {
		if idx > 0 {
			keys[idx-1] += ","
		}
		keys = slices.Delete(keys, idx, idx+1)
	}
	return keys
}

func lastEmpty(keys []string) int {
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] == "" {
			return i
		}
	}
	return -1
}

// Segments splits a single shortcut into its "+"-joined key names.
// A trailing "+" names the plus key: "ctrl++" yields ["ctrl", "+"].
func Segments(shortcut string) []string {
	parts := strings.Split(shortcut, "+")
	if len(parts) > 1 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
		parts = append(parts[:len(parts)-2], "+")
	}
	return parts
}

// ParseShortcut parses one shortcut. It never fails: unknown names fall
// through to character-code guesses.
func ParseShortcut(shortcut string) Shortcut {
	segs := Segments(shortcut)
	s := Shortcut{Text: shortcut}

	if len(segs) > 1 {
		s.Mods = make([]Code, 0, len(segs)-1)
		for _, seg := range segs[:len(segs)-1] {
			s.Mods = append(s.Mods, ResolveModifier(seg))
		}
	}

	last := segs[len(segs)-1]
	if last == Wildcard {
		s.Code = CodeWildcard
	} else {
		s.Code = Resolve(last)
	}
	return s
}

// ParseSpec splits a spec and parses every shortcut in it.
func ParseSpec(spec string) []Shortcut {
	items := SplitSpec(spec)
	out := make([]Shortcut, 0, len(items))
	for _, item := range items {
		out = append(out, ParseShortcut(item))
	}
	return out
}

// Codes resolves every segment of a shortcut through Resolve.
// This is the key set that must be held for the shortcut to match.
func Codes(shortcut string) []Code {
	segs := Segments(shortcut)
	codes := make([]Code, 0, len(segs))
	for _, seg := range segs {
		codes = append(codes, Resolve(seg))
	}
	return codes
}

// SameCodes reports whether a and b hold the same codes, ignoring order.
// Duplicates count, so the comparison is on sorted sequences.
func SameCodes(a, b []Code) bool {
	if len(a) != len(b) {
		return false
	}
	return slices.Equal(Sorted(a), Sorted(b))
}

// SameModifierSet reports whether a and b contain the same modifier codes,
// ignoring order and duplicates.
func SameModifierSet(a, b []Code) bool {
	for _, c := range a {
		if !slices.Contains(b, c) {
			return false
		}
	}
	for _, c := range b {
		if !slices.Contains(a, c) {
			return false
		}
	}
	return true
}
