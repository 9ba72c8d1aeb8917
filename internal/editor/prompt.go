package editor

import (
	"errors"

	"github.com/dshills/keyline/internal/engine/line"
)

// ErrPromptMarkers indicates a template without exactly one live-buffer
// marker.
var ErrPromptMarkers = errors.New("prompt template must contain exactly one live-buffer marker")

// Segment is one piece of a prompt template: literal text, or the slot
// where the live buffer is spliced in.
type Segment struct {
	Text string
	Live bool
}

// Literal returns a literal text segment.
func Literal(text string) Segment {
	return Segment{Text: text}
}

// LiveBuffer returns the live-buffer marker segment.
func LiveBuffer() Segment {
	return Segment{Live: true}
}

// Prompt is an ordered sequence of literal segments around exactly one
// live-buffer marker.
type Prompt struct {
	segments []Segment
}

// NewPrompt builds the common case: a literal prefix followed by the
// live buffer.
func NewPrompt(literal string) Prompt {
	return Prompt{segments: []Segment{Literal(literal), LiveBuffer()}}
}

// NewTemplate builds a prompt from explicit segments. Exactly one
// live-buffer marker is required.
func NewTemplate(segments ...Segment) (Prompt, error) {
	live := 0
	for _, s := range segments {
		if s.Live {
			live++
		}
	}
	if live != 1 {
		return Prompt{}, ErrPromptMarkers
	}
	return Prompt{segments: segments}, nil
}

// Render returns the prompt line with buffer spliced at the marker.
func (p Prompt) Render(buffer string) string {
	var out []byte
	for _, s := range p.segments {
		if s.Live {
			out = append(out, buffer...)
			continue
		}
		out = append(out, s.Text...)
	}
	return string(out)
}

// WidthBefore returns the display width of the literal text preceding
// the live-buffer marker. The cursor column on screen is this plus the
// buffer's own visual cursor.
func (p Prompt) WidthBefore() int {
	w := 0
	for _, s := range p.segments {
		if s.Live {
			break
		}
		w += line.StringWidth(s.Text)
	}
	return w
}
