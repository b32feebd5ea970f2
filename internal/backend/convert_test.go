package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/input/key"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		k        tcell.Key
		r        rune
		mod      tcell.ModMask
		wantCode key.Code
		wantMods key.Modifier
		wantOK   bool
	}{
		{"letter", tcell.KeyRune, 'a', tcell.ModNone, 'A', key.ModNone, true},
		{"upper letter adds shift", tcell.KeyRune, 'A', tcell.ModNone, 'A', key.ModShift, true},
		{"digit", tcell.KeyRune, '5', tcell.ModNone, '5', key.ModNone, true},
		{"comma", tcell.KeyRune, ',', tcell.ModNone, 188, key.ModNone, true},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, 32, key.ModNone, true},
		{"alt letter", tcell.KeyRune, 'x', tcell.ModAlt, 'X', key.ModAlt, true},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, 13, key.ModNone, true},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, 27, key.ModNone, true},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, 9, key.ModNone, true},
		{"shift up", tcell.KeyUp, 0, tcell.ModShift, 38, key.ModShift, true},
		{"f5", tcell.KeyF5, 0, tcell.ModNone, 116, key.ModNone, true},
		{"ctrl k", tcell.KeyCtrlK, 0, tcell.ModCtrl, 'K', key.ModCtrl, true},
		{"ctrl s without flag", tcell.KeyCtrlS, 0, tcell.ModNone, 'S', key.ModCtrl, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := tcell.NewEventKey(tt.k, tt.r, tt.mod)
			code, mods, ok := Translate(ev)
			if ok != tt.wantOK {
				t.Fatalf("Translate() ok = %v, want %v", ok, tt.wantOK)
			}
			if code != tt.wantCode {
				t.Errorf("Translate() code = %v, want %v", code, tt.wantCode)
			}
			if mods != tt.wantMods {
				t.Errorf("Translate() mods = %v, want %v", mods, tt.wantMods)
			}
		})
	}
}

func TestConvertMod(t *testing.T) {
	got := convertMod(tcell.ModCtrl | tcell.ModAlt | tcell.ModShift | tcell.ModMeta)
	want := key.ModCtrl | key.ModAlt | key.ModShift | key.ModMeta
	if got != want {
		t.Errorf("convertMod() = %v, want %v", got, want)
	}
	if got := convertMod(tcell.ModNone); got != key.ModNone {
		t.Errorf("convertMod(none) = %v, want none", got)
	}
}
