package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single decoded key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event was decoded.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a plain printable character with no
// modifiers beyond Shift (which is part of the character itself).
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.HasCtrl() && unicode.IsPrint(e.Rune)
}

// IsCtrl returns true if this is Control plus the given character.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers.HasCtrl()
}

// IsNone returns true if this event carries no key (unrecognized input).
func (e Event) IsNone() bool {
	return e.Key == KeyNone
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsTab returns true if this is Tab with no modifiers.
func (e Event) IsTab() bool {
	return e.Key == KeyTab && e.Modifiers == ModNone
}

// IsShiftTab returns true if this is Shift+Tab.
func (e Event) IsShiftTab() bool {
	return e.Key == KeyTab && e.Modifiers.HasShift()
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a canonical string representation.
// Examples: "a", "C-r", "Enter", "C-Left".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			parts = append(parts, "Space")
		} else {
			parts = append(parts, string(e.Rune))
		}
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "-")
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
