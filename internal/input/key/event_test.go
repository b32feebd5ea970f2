package key

import (
	"testing"
)

func TestEventCode(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  Code
	}{
		{"keyCode", Event{KeyCode: 65, Which: 66, CharCode: 67}, 65},
		{"which", Event{Which: 66, CharCode: 67}, 66},
		{"charCode", Event{CharCode: 67}, 67},
		{"none", Event{}, CodeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Code(); got != tt.want {
				t.Errorf("Code() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent(KeyDown, 75, ModCtrl|ModShift)

	if ev.Type != KeyDown {
		t.Errorf("Type = %v, want %v", ev.Type, KeyDown)
	}
	if ev.Code() != 75 {
		t.Errorf("Code() = %d, want 75", ev.Code())
	}
	if !ev.CtrlKey || !ev.ShiftKey || ev.AltKey || ev.MetaKey {
		t.Errorf("flags = shift:%v ctrl:%v alt:%v meta:%v", ev.ShiftKey, ev.CtrlKey, ev.AltKey, ev.MetaKey)
	}
	if ev.Modifiers() != ModCtrl|ModShift {
		t.Errorf("Modifiers() = %v, want Ctrl+Shift", ev.Modifiers())
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestEventMetaKeyValue(t *testing.T) {
	ev := NewEvent(KeyUp, CodeMeta, ModNone)
	if !ev.IsMeta() {
		t.Errorf("IsMeta() = false for Key %q", ev.Key)
	}

	ev = NewEvent(KeyUp, CodeCtrl, ModNone)
	if ev.IsMeta() {
		t.Error("IsMeta() = true for ctrl")
	}
}

func TestEventFlag(t *testing.T) {
	ev := &Event{ShiftKey: true, MetaKey: true}
	if !ev.Flag(CodeShift) {
		t.Error("Flag(shift) = false, want true")
	}
	if ev.Flag(CodeCtrl) {
		t.Error("Flag(ctrl) = true, want false")
	}
	if !ev.Flag(CodeMetaGecko) {
		t.Error("Flag(224) = false, want true")
	}
	if ev.Flag(65) {
		t.Error("Flag(65) = true, want false")
	}
}

func TestEventCancel(t *testing.T) {
	ev := NewEvent(KeyDown, 83, ModCtrl)
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Fatal("fresh event should not be cancelled")
	}

	ev.Cancel()
	if !ev.DefaultPrevented() {
		t.Error("DefaultPrevented() = false after Cancel")
	}
	if !ev.PropagationStopped() {
		t.Error("PropagationStopped() = false after Cancel")
	}
}

func TestEventLegacyCancellation(t *testing.T) {
	ev := NewEvent(KeyDown, 83, ModNone)
	ev.SetReturnValue(true)
	ev.SetCancelBubble(false)
	if ev.DefaultPrevented() || ev.PropagationStopped() {
		t.Error("true return value / false cancelBubble should not cancel")
	}

	ev.SetReturnValue(false)
	ev.SetCancelBubble(true)
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("legacy cancellation should prevent default and stop propagation")
	}
}

func TestEventTypeString(t *testing.T) {
	if KeyDown.String() != "keydown" {
		t.Errorf("KeyDown.String() = %q", KeyDown.String())
	}
	if KeyUp.String() != "keyup" {
		t.Errorf("KeyUp.String() = %q", KeyUp.String())
	}
}

func TestEventString(t *testing.T) {
	ev := NewEvent(KeyDown, 75, ModCtrl)
	if got := ev.String(); got != "keydown k(Ctrl)" {
		t.Errorf("String() = %q, want %q", got, "keydown k(Ctrl)")
	}
}
