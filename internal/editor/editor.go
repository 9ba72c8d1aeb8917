package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dshills/keyline/internal/engine/complete"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/engine/line"
	"github.com/dshills/keyline/internal/engine/search"
	"github.com/dshills/keyline/internal/input/decoder"
	"github.com/dshills/keyline/internal/input/key"
)

// Terminal switches the input descriptor into byte-at-a-time mode for
// the duration of a capture. The returned function restores the previous
// mode.
type Terminal interface {
	Raw(minBytes int) (restore func() error, err error)
}

// Logger receives the editor's non-fatal diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Editor captures edited lines from a terminal. It persists across
// Capture calls and owns the session's history; per-capture state is
// created fresh each call. Not safe for concurrent use.
type Editor struct {
	in        io.Reader
	rawOut    io.Writer
	out       *bufio.Writer
	prompt    Prompt
	capacity  int
	window    int
	completer complete.Provider
	terminal  Terminal
	logger    Logger

	ring *history.Ring
}

// New creates an Editor with the given options.
func New(opts ...Option) *Editor {
	e := &Editor{
		in:       os.Stdin,
		rawOut:   os.Stdout,
		prompt:   NewPrompt("> "),
		capacity: history.DefaultCapacity,
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.out = bufio.NewWriter(e.rawOut)
	e.ring = history.NewRing(e.capacity)
	return e
}

// History returns the session's history ring. Used to preload persisted
// entries and to drain them for persistence on shutdown.
func (e *Editor) History() *history.Ring {
	return e.ring
}

// SetPrompt replaces the prompt template between captures.
func (e *Editor) SetPrompt(p Prompt) {
	e.prompt = p
}

// SetHistoryCapacity resizes the history ring between captures, keeping
// the newest entries that fit the new capacity.
func (e *Editor) SetHistoryCapacity(n int) {
	ring := history.NewRing(n)
	if ring.Capacity() == e.ring.Capacity() {
		return
	}
	all := e.ring.All()
	if len(all) > ring.Capacity() {
		all = all[len(all)-ring.Capacity():]
	}
	for _, entry := range all {
		ring.Append(entry)
	}
	e.ring = ring
}

// SetNavigationWindow changes how far back ArrowUp can page in
// subsequent captures.
func (e *Editor) SetNavigationWindow(n int) {
	e.window = n
}

// Capture blocks until a line is submitted with Enter and returns its
// text. Raw mode, when a Terminal is configured, is held for the whole
// call and restored on every exit path; restore failures are logged, not
// escalated. Ctrl-C returns ErrInterrupted; stream errors and decode
// errors propagate as-is.
func (e *Editor) Capture() (string, error) {
	if e.terminal != nil {
		restore, err := e.terminal.Raw(1)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrTerminalMode, err)
		}
		defer func() {
			if err := restore(); err != nil {
				e.logger.Warn("restoring terminal mode: %v", err)
			}
		}()
	}

	c := &capture{
		e:      e,
		dec:    decoder.New(e.in),
		buf:    line.New(),
		nav:    history.NewNavigator(e.ring, e.window),
		search: search.New(e.ring),
	}
	return c.run()
}

// capture holds the state of one Capture call.
type capture struct {
	e       *Editor
	dec     *decoder.Decoder
	buf     *line.Buffer
	nav     *history.Navigator
	search  *search.Search
	session *complete.Session
}

func (c *capture) run() (string, error) {
	for {
		if err := render(c.e.out, c.e.prompt, c.buf); err != nil {
			return "", err
		}

		ev, err := c.dec.Next()
		if err != nil {
			return "", err
		}
		if ev.IsNone() {
			continue
		}

		var done bool
		var text string
		switch {
		case c.search.Active():
			done, text, err = c.handleSearching(ev)
		case c.session != nil:
			done, text, err = c.handleCompleting(ev)
		default:
			done, text, err = c.handleEditing(ev)
		}
		if done || err != nil {
			return text, err
		}
	}
}

// handleEditing dispatches a key in normal mode.
func (c *capture) handleEditing(ev key.Event) (bool, string, error) {
	switch {
	case ev.IsCtrl('c'):
		return true, "", c.interrupt()

	case ev.IsEnter():
		text, err := c.submit()
		return true, text, err

	case ev.IsCtrl('r'):
		// The current buffer text becomes the search query.
		c.search.Begin()

	case ev.IsTab():
		if session, ok := complete.Begin(c.e.completer, c.buf.Text()); ok {
			c.session = session
			c.buf.SetText(session.Current())
		}

	case ev.Key == key.KeyUp:
		if text, ok := c.nav.Up(c.buf.Text()); ok {
			c.buf.SetText(text)
		}

	case ev.Key == key.KeyDown:
		if text, ok := c.nav.Down(c.buf.Text()); ok {
			c.buf.SetText(text)
		}

	default:
		c.applyEdit(ev)
	}
	return false, "", nil
}

// handleSearching dispatches a key while reverse search is active. The
// buffer holds the query; edits apply to it directly.
func (c *capture) handleSearching(ev key.Event) (bool, string, error) {
	switch {
	case ev.IsCtrl('r'):
		c.search.Advance(c.buf.Text())

	case ev.IsCtrl('s'):
		c.search.Retreat()

	case ev.IsCtrl('c'), ev.IsCtrl('g'):
		c.search.End()
		c.buf.Reset()

	case ev.IsEscape():
		// The literal query stays as the buffer, not the match.
		c.search.End()

	case ev.Key == key.KeyUp, ev.Key == key.KeyDown:
		c.search.End()

	case ev.IsEnter():
		if match, ok := c.search.Match(c.buf.Text()); ok {
			c.buf.SetText(match)
		}
		c.search.End()
		text, err := c.submit()
		return true, text, err

	case ev.IsTab(), ev.IsShiftTab():
		// No nested modes.

	case ev.IsChar():
		c.buf.InsertRune(ev.Rune)
		c.search.ResetOffset()

	default:
		c.applyEdit(ev)
	}
	return false, "", nil
}

// handleCompleting dispatches a key while cycling candidates. Any key
// other than Tab or Enter accepts the displayed candidate and is then
// handled as a normal editing key.
func (c *capture) handleCompleting(ev key.Event) (bool, string, error) {
	switch {
	case ev.IsTab():
		c.buf.SetText(c.session.Next())
		return false, "", nil

	case ev.IsEnter():
		c.session = nil
		text, err := c.submit()
		return true, text, err

	case ev.IsCtrl('r'):
		// Swallowed: exits autocomplete without starting a search.
		c.session = nil
		return false, "", nil

	default:
		c.session = nil
		return c.handleEditing(ev)
	}
}

// applyEdit performs the mode-independent buffer operations. Keys with
// no editing meaning fall through as no-ops.
func (c *capture) applyEdit(ev key.Event) {
	switch {
	case ev.Key == key.KeyBackspace && ev.Modifiers.HasCtrl():
		c.buf.DeleteWordBack()
	case ev.IsBackspace():
		c.buf.DeleteRuneBack()
	case ev.Key == key.KeyLeft && ev.Modifiers.HasCtrl():
		c.buf.MoveWordLeft()
	case ev.Key == key.KeyLeft:
		c.buf.MoveLeft()
	case ev.Key == key.KeyRight && ev.Modifiers.HasCtrl():
		c.buf.MoveWordRight()
	case ev.Key == key.KeyRight:
		c.buf.MoveRight()
	case ev.IsChar():
		c.buf.InsertRune(ev.Rune)
	}
}

// submit ends the capture: echo the line break, commit non-empty text to
// history, and return it.
func (c *capture) submit() (string, error) {
	c.e.out.WriteString("\r\n")
	if err := c.e.out.Flush(); err != nil {
		return "", err
	}

	text := c.buf.Text()
	if text != "" {
		c.e.ring.Append(text)
	}
	return text, nil
}

// interrupt echoes ^C and aborts the capture.
func (c *capture) interrupt() error {
	c.e.out.WriteString("^C\r\n")
	if err := c.e.out.Flush(); err != nil {
		return err
	}
	return ErrInterrupted
}
