// Package line provides the single-line edit buffer at the core of the
// editor: a valid-UTF-8 byte sequence with a byte cursor and a derived
// visual-column cursor.
//
// The invariant maintained by every operation is
//
//	Column() == StringWidth(Text()[:Cursor()])
//
// where the cursor always sits on a codepoint boundary. All cursor-column
// arithmetic uses display widths (1 or 2 columns per codepoint, by East
// Asian Width), never raw byte counts. Operations at buffer boundaries are
// no-ops, never errors.
package line

import (
	"unicode"
	"unicode/utf8"
)

// Buffer is a mutable single line of text with a cursor.
// A Buffer is owned by one capture at a time and is not safe for
// concurrent use.
type Buffer struct {
	text   []byte
	cursor int // byte offset, always on a codepoint boundary
	col    int // display width of text[:cursor]
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// Cursor returns the byte cursor.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Column returns the visual column of the cursor.
func (b *Buffer) Column() int {
	return b.col
}

// Reset clears the buffer and moves the cursor to 0.
func (b *Buffer) Reset() {
	b.text = b.text[:0]
	b.cursor = 0
	b.col = 0
}

// SetText replaces the content and snaps the cursor to end-of-text.
func (b *Buffer) SetText(s string) {
	b.text = append(b.text[:0], s...)
	b.cursor = len(b.text)
	b.col = widthOfBytes(b.text)
}

// InsertRune splices r at the cursor and advances it past the new
// codepoint.
func (b *Buffer) InsertRune(r rune) {
	enc := utf8.AppendRune(nil, r)

	if b.cursor == len(b.text) {
		b.text = append(b.text, enc...)
	} else {
		out := make([]byte, 0, len(b.text)+len(enc))
		out = append(out, b.text[:b.cursor]...)
		out = append(out, enc...)
		out = append(out, b.text[b.cursor:]...)
		b.text = out
	}

	b.cursor += len(enc)
	b.col += RuneWidth(r)
}

// InsertString inserts each codepoint of s at the cursor.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		b.InsertRune(r)
	}
}

// DeleteRuneBack removes the codepoint before the cursor atomically.
// No-op at the start of the buffer.
func (b *Buffer) DeleteRuneBack() {
	if b.cursor == 0 {
		return
	}

	r, size := utf8.DecodeLastRune(b.text[:b.cursor])
	b.text = append(b.text[:b.cursor-size], b.text[b.cursor:]...)
	b.cursor -= size
	b.col -= RuneWidth(r)
}

// MoveLeft moves the cursor one codepoint left. No-op at the start.
func (b *Buffer) MoveLeft() {
	if b.cursor == 0 {
		return
	}

	r, size := utf8.DecodeLastRune(b.text[:b.cursor])
	b.cursor -= size
	b.col -= RuneWidth(r)
}

// MoveRight moves the cursor one codepoint right. No-op at the end.
func (b *Buffer) MoveRight() {
	if b.cursor == len(b.text) {
		return
	}

	r, size := utf8.DecodeRune(b.text[b.cursor:])
	b.cursor += size
	b.col += RuneWidth(r)
}

// MoveEnd snaps the cursor to end-of-text.
func (b *Buffer) MoveEnd() {
	b.col += widthOfBytes(b.text[b.cursor:])
	b.cursor = len(b.text)
}

// MoveWordLeft moves the cursor to the start of the word to its left:
// contiguous whitespace is skipped first, then contiguous non-whitespace.
func (b *Buffer) MoveWordLeft() {
	target := b.prevWordBoundary()
	b.col -= widthOfBytes(b.text[target:b.cursor])
	b.cursor = target
}

// MoveWordRight mirrors MoveWordLeft, scanning rightward.
func (b *Buffer) MoveWordRight() {
	target := b.nextWordBoundary()
	b.col += widthOfBytes(b.text[b.cursor:target])
	b.cursor = target
}

// DeleteWordBack removes the span MoveWordLeft would skip.
func (b *Buffer) DeleteWordBack() {
	target := b.prevWordBoundary()
	if target == b.cursor {
		return
	}

	b.col -= widthOfBytes(b.text[target:b.cursor])
	b.text = append(b.text[:target], b.text[b.cursor:]...)
	b.cursor = target
}

// prevWordBoundary scans left from the cursor: whitespace first, then
// non-whitespace. Whitespace classification is unicode.IsSpace.
func (b *Buffer) prevWordBoundary() int {
	i := b.cursor
	for i > 0 {
		r, size := utf8.DecodeLastRune(b.text[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	for i > 0 {
		r, size := utf8.DecodeLastRune(b.text[:i])
		if unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	return i
}

// nextWordBoundary scans right from the cursor: whitespace first, then
// non-whitespace.
func (b *Buffer) nextWordBoundary() int {
	i := b.cursor
	for i < len(b.text) {
		r, size := utf8.DecodeRune(b.text[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += size
	}
	for i < len(b.text) {
		r, size := utf8.DecodeRune(b.text[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}
