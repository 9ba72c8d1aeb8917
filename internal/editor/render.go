package editor

import (
	"bufio"
	"fmt"

	"github.com/dshills/keyline/internal/engine/line"
)

// Escape sequences used by the renderer.
const (
	clearLine     = "\x1b[2K"
	cursorForward = "\x1b[%dC" // parameterized by column count
)

// render redraws the prompt line after each keystroke: clear the line,
// return to column 0, write the prompt with the live buffer spliced in,
// return again, then step the cursor forward to its visual column. The
// writer is flushed before the next blocking read.
func render(w *bufio.Writer, p Prompt, buf *line.Buffer) error {
	w.WriteString(clearLine)
	w.WriteByte('\r')
	w.WriteString(p.Render(buf.Text()))
	w.WriteByte('\r')

	if col := p.WidthBefore() + buf.Column(); col > 0 {
		fmt.Fprintf(w, cursorForward, col)
	}
	return w.Flush()
}
