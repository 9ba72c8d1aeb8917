package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyBackspace, "Backspace"},
		{KeyUp, "Up"},
		{KeyDown, "Down"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeyRune, "Rune"},
		{Key(200), "Key(200)"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyIsSpecial(t *testing.T) {
	if KeyNone.IsSpecial() {
		t.Error("KeyNone should not be special")
	}
	if KeyRune.IsSpecial() {
		t.Error("KeyRune should not be special")
	}
	if !KeyEnter.IsSpecial() {
		t.Error("KeyEnter should be special")
	}
	if !KeyUp.IsSpecial() {
		t.Error("KeyUp should be special")
	}
}

func TestKeyIsArrowKey(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight} {
		if !k.IsArrowKey() {
			t.Errorf("%s should be an arrow key", k)
		}
	}
	for _, k := range []Key{KeyNone, KeyEnter, KeyTab, KeyRune} {
		if k.IsArrowKey() {
			t.Errorf("%s should not be an arrow key", k)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, "None"},
		{ModCtrl, "C"},
		{ModShift, "S"},
		{ModCtrl | ModShift, "C-S"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierWith(t *testing.T) {
	m := ModNone.With(ModCtrl)
	if !m.HasCtrl() {
		t.Error("expected Ctrl after With(ModCtrl)")
	}
	if m.HasShift() {
		t.Error("did not expect Shift")
	}
}
