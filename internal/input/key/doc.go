// Package key defines the logical key event model shared by the input
// decoder and the editor.
//
// A key press is represented as an Event: either a character (KeyRune plus
// the Rune field) or a special key (Enter, Tab, Backspace, Escape, arrows),
// combined with a Modifier bitmask. Raw input bytes never appear in events;
// the decoder resolves them before an Event is constructed.
package key
