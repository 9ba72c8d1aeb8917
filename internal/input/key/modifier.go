package key

import "strings"

// Modifier is a bitmask of modifier keys held during a key press.
type Modifier uint8

const (
	// ModNone means no modifiers are active.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl
)

// HasShift returns true if Shift is active.
func (m Modifier) HasShift() bool {
	return m&ModShift != 0
}

// HasCtrl returns true if Control is active.
func (m Modifier) HasCtrl() bool {
	return m&ModCtrl != 0
}

// With returns the modifier set with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String returns a canonical representation such as "C-S" or "None".
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "C")
	}
	if m.HasShift() {
		parts = append(parts, "S")
	}
	return strings.Join(parts, "-")
}
