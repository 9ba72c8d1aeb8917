// Package decoder turns a blocking byte stream into logical key events.
//
// The decoder reads one byte at a time (plus continuation bytes for UTF-8
// sequences and escape sequences) and classifies it against fixed tables.
// It never buffers ahead of the current event, so it can sit directly on a
// raw-mode terminal fd.
package decoder

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dshills/keyline/internal/input/key"
)

// ErrInvalidUTF8 indicates a malformed UTF-8 sequence on the input stream.
var ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")

// DecodeError reports the byte sequence that failed to decode as a single
// UTF-8 codepoint. It is propagated, not recovered.
type DecodeError struct {
	Sequence []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode key: invalid utf-8 sequence % x", e.Sequence)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidUTF8
}

// escapeSequence maps a post-ESC byte sequence to the event it produces.
type escapeSequence struct {
	seq string
	key key.Key
	mod key.Modifier
}

// Escape sequences are matched in order, byte by byte; candidates that stop
// matching are eliminated. Matching is bounded to len(escapeSequences)+1
// reads; anything unresolved within that bound is a bare Escape.
var escapeSequences = []escapeSequence{
	{"[A", key.KeyUp, key.ModNone},
	{"[B", key.KeyDown, key.ModNone},
	{"[C", key.KeyRight, key.ModNone},
	{"[D", key.KeyLeft, key.ModNone},
	{"[Z", key.KeyTab, key.ModShift},
	{"[1;5C", key.KeyRight, key.ModCtrl},
	{"[1;5D", key.KeyLeft, key.ModCtrl},
}

// Decoder reads key events from a byte stream.
// Reads block until input is available; a Decoder must not be shared
// between goroutines.
type Decoder struct {
	r   io.Reader
	one [1]byte
}

// New creates a Decoder reading from r.
func New(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next blocks until one key event has been decoded.
//
// Unrecognized control bytes yield an event with key.KeyNone, which callers
// ignore. Stream errors and end-of-stream are fatal for the caller's capture
// and are returned as-is; malformed UTF-8 returns a *DecodeError.
func (d *Decoder) Next() (key.Event, error) {
	b, err := d.readByte()
	if err != nil {
		return key.Event{}, err
	}

	switch b {
	case 0x03:
		return key.NewRuneEvent('c', key.ModCtrl), nil
	case 0x07:
		return key.NewRuneEvent('g', key.ModCtrl), nil
	case 0x08, 0x17: // ^H and ^W both arrive as word-erase in practice
		return key.NewSpecialEvent(key.KeyBackspace, key.ModCtrl), nil
	case 0x09:
		return key.NewSpecialEvent(key.KeyTab, key.ModNone), nil
	case 0x0a:
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone), nil
	case 0x12:
		return key.NewRuneEvent('r', key.ModCtrl), nil
	case 0x13:
		return key.NewRuneEvent('s', key.ModCtrl), nil
	case 0x1b:
		return d.decodeEscape()
	case 0x7f:
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone), nil
	}

	if b > 0x1f {
		return d.decodeRune(b)
	}

	// Unrecognized control byte.
	return key.Event{Key: key.KeyNone}, nil
}

// decodeEscape resolves the bytes following ESC against the sequence table.
func (d *Decoder) decodeEscape() (key.Event, error) {
	var prefix []byte
	limit := len(escapeSequences) + 1

	for read := 0; read < limit; read++ {
		b, err := d.readByte()
		if err != nil {
			return key.Event{}, err
		}
		prefix = append(prefix, b)

		alive := 0
		for _, es := range escapeSequences {
			if len(prefix) > len(es.seq) || es.seq[:len(prefix)] != string(prefix) {
				continue
			}
			if len(prefix) == len(es.seq) {
				return key.NewSpecialEvent(es.key, es.mod), nil
			}
			alive++
		}
		if alive == 0 {
			break
		}
	}

	return key.NewSpecialEvent(key.KeyEscape, key.ModNone), nil
}

// decodeRune assembles a full UTF-8 sequence starting with first.
func (d *Decoder) decodeRune(first byte) (key.Event, error) {
	if first < utf8.RuneSelf {
		return key.NewRuneEvent(rune(first), key.ModNone), nil
	}

	n := sequenceLength(first)
	if n == 0 {
		return key.Event{}, &DecodeError{Sequence: []byte{first}}
	}

	seq := make([]byte, 1, n)
	seq[0] = first
	for i := 1; i < n; i++ {
		b, err := d.readByte()
		if err != nil {
			return key.Event{}, err
		}
		if b&0xc0 != 0x80 {
			return key.Event{}, &DecodeError{Sequence: append(seq, b)}
		}
		seq = append(seq, b)
	}

	r, size := utf8.DecodeRune(seq)
	if r == utf8.RuneError || size != n {
		return key.Event{}, &DecodeError{Sequence: seq}
	}
	return key.NewRuneEvent(r, key.ModNone), nil
}

// sequenceLength returns the UTF-8 sequence length implied by the first
// byte, or 0 if the byte cannot start a sequence.
func sequenceLength(b byte) int {
	switch {
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// readByte blocks until exactly one byte is available.
// A zero-byte read with no error is reported as io.ErrUnexpectedEOF: the
// stream has nothing more to give and the capture cannot continue.
func (d *Decoder) readByte() (byte, error) {
	n, err := d.r.Read(d.one[:])
	if n == 1 {
		return d.one[0], nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return 0, err
}
