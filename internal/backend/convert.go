package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/input/key"
)

// namedKeys maps tcell special keys to key codes. It is a list so that
// aliased tcell constants (Backspace and Ctrl+H share a value) resolve to
// the first entry.
var namedKeys = []struct {
	k    tcell.Key
	code key.Code
}{
	{tcell.KeyBackspace, 8},
	{tcell.KeyBackspace2, 8},
	{tcell.KeyTab, 9},
	{tcell.KeyEnter, 13},
	{tcell.KeyEscape, 27},
	{tcell.KeyPgUp, 33},
	{tcell.KeyPgDn, 34},
	{tcell.KeyEnd, 35},
	{tcell.KeyHome, 36},
	{tcell.KeyLeft, 37},
	{tcell.KeyUp, 38},
	{tcell.KeyRight, 39},
	{tcell.KeyDown, 40},
	{tcell.KeyInsert, 45},
	{tcell.KeyDelete, 46},
	{tcell.KeyF1, 112},
	{tcell.KeyF2, 113},
	{tcell.KeyF3, 114},
	{tcell.KeyF4, 115},
	{tcell.KeyF5, 116},
	{tcell.KeyF6, 117},
	{tcell.KeyF7, 118},
	{tcell.KeyF8, 119},
	{tcell.KeyF9, 120},
	{tcell.KeyF10, 121},
	{tcell.KeyF11, 122},
	{tcell.KeyF12, 123},
}

// Translate converts a terminal key event to a key code and the modifiers
// held with it. ok is false for keys with no code.
func Translate(ev *tcell.EventKey) (code key.Code, mods key.Modifier, ok bool) {
	mods = convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		if r == ' ' {
			return 32, mods, true
		}
		code = key.Resolve(string(r))
		return code, mods, code != key.CodeNone
	}

	for _, nk := range namedKeys {
		if nk.k == k {
			return nk.code, mods, true
		}
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Code('A' + int(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl), true
	}
	if k == tcell.KeyCtrlSpace {
		return 32, mods.With(key.ModCtrl), true
	}
	return key.CodeNone, mods, false
}

// convertMod converts tcell modifiers to a modifier bitmask.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	mods = mods.Set(key.ModShift, m&tcell.ModShift != 0)
	mods = mods.Set(key.ModCtrl, m&tcell.ModCtrl != 0)
	mods = mods.Set(key.ModAlt, m&tcell.ModAlt != 0)
	mods = mods.Set(key.ModMeta, m&tcell.ModMeta != 0)
	return mods
}
