package key

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Code identifies a physical key.
// Values follow the browser keyCode space so that letters and digits map to
// their uppercase character codes.
type Code int

const (
	// CodeNone represents no key.
	CodeNone Code = 0

	// CodeWildcard is the registry bucket for "*" handlers.
	CodeWildcard Code = -1

	// Modifier keys
	CodeShift Code = 16
	CodeCtrl  Code = 17
	CodeAlt   Code = 18
	CodeMeta  Code = 91

	// CodeMetaRight is the right meta key on WebKit.
	CodeMetaRight Code = 93

	// CodeMetaGecko is the meta key as reported by Gecko.
	CodeMetaGecko Code = 224

	// CodeIME marks a keydown being processed by an input method editor.
	CodeIME Code = 229
)

// Wildcard is the shortcut text matching any primary key.
const Wildcard = "*"

// ModifierCodes lists the tracked modifier codes in ascending order.
var ModifierCodes = [...]Code{CodeShift, CodeCtrl, CodeAlt, CodeMeta}

// namedKeys maps key names (lowercase) to codes.
var namedKeys = map[string]Code{
	"backspace": 8,
	"tab":       9,
	"clear":     12,
	"enter":     13,
	"return":    13,
	"esc":       27,
	"escape":    27,
	"space":     32,
	"left":      37,
	"up":        38,
	"right":     39,
	"down":      40,
	"del":       46,
	"delete":    46,
	"ins":       45,
	"insert":    45,
	"home":      36,
	"end":       35,
	"pageup":    33,
	"pagedown":  34,
	"capslock":  20,
	"⇪":         20,
	",":         188,
	".":         190,
	"/":         191,
	"`":         192,
	"-":         189,
	"=":         187,
	";":         186,
	"'":         222,
	"[":         219,
	"]":         221,
	"\\":        220,
	"f1":        112,
	"f2":        113,
	"f3":        114,
	"f4":        115,
	"f5":        116,
	"f6":        117,
	"f7":        118,
	"f8":        119,
	"f9":        120,
	"f10":       121,
	"f11":       122,
	"f12":       123,
	"f13":       124,
	"f14":       125,
	"f15":       126,
	"f16":       127,
	"f17":       128,
	"f18":       129,
	"f19":       130,
}

// modifierKeys maps modifier names (lowercase) to codes.
var modifierKeys = map[string]Code{
	"⇧":       CodeShift,
	"shift":   CodeShift,
	"⌥":       CodeAlt,
	"alt":     CodeAlt,
	"option":  CodeAlt,
	"⌃":       CodeCtrl,
	"ctrl":    CodeCtrl,
	"control": CodeCtrl,
	"⌘":       CodeMeta,
	"cmd":     CodeMeta,
	"command": CodeMeta,
	"meta":    CodeMeta,
	"windows": CodeMeta,
}

// Resolve returns the code for a key name.
//
// Lookup order is the named-key table, then the modifier table, then the
// character code of the uppercased first character. The empty name
// resolves to CodeNone.
func Resolve(name string) Code {
	lower := strings.ToLower(name)
	if c, ok := namedKeys[lower]; ok {
		return c
	}
	if c, ok := modifierKeys[lower]; ok {
		return c
	}
	upper := strings.ToUpper(name)
	if upper == "" {
		return CodeNone
	}
	r, _ := utf8.DecodeRuneInString(upper)
	return Code(r)
}

// ResolveModifier returns the code for a modifier name.
// Returns CodeNone if the name is not a modifier.
func ResolveModifier(name string) Code {
	return modifierKeys[strings.ToLower(name)]
}

// Normalize unifies the left/right and per-engine meta key codes into CodeMeta.
func Normalize(c Code) Code {
	if c == CodeMetaRight || c == CodeMetaGecko {
		return CodeMeta
	}
	return c
}

// IsModifier returns true if c is one of the four tracked modifier codes.
func (c Code) IsModifier() bool {
	switch c {
	case CodeShift, CodeCtrl, CodeAlt, CodeMeta:
		return true
	}
	return false
}

// String returns a human-readable name for the code.
func (c Code) String() string {
	if name := Name(c); name != "" {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

var codeNames = buildCodeNames()

// buildCodeNames picks the shortest name for each code, breaking ties
// alphabetically so the result is stable.
func buildCodeNames() map[Code]string {
	names := make(map[Code]string)
	add := func(table map[string]Code) {
		for name, c := range table {
			if !isASCII(name) {
				continue
			}
			cur, ok := names[c]
			if !ok || len(name) < len(cur) || (len(name) == len(cur) && name < cur) {
				names[c] = name
			}
		}
	}
	add(namedKeys)
	add(modifierKeys)
	return names
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Name returns a canonical lowercase name for a code.
// Letters and digits are returned as themselves. Returns "" if the code
// has no printable name.
func Name(c Code) string {
	switch {
	case c == CodeWildcard:
		return Wildcard
	case c == CodeMetaRight || c == CodeMetaGecko:
		c = CodeMeta
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
		return strings.ToLower(string(rune(c)))
	}
	return ""
}

// Sorted returns an ascending copy of codes.
func Sorted(codes []Code) []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
