package editor

import (
	"io"

	"github.com/dshills/keyline/internal/engine/complete"
)

// Option configures an Editor.
type Option func(*Editor)

// WithInput sets the byte stream keys are decoded from. Defaults to
// os.Stdin.
func WithInput(r io.Reader) Option {
	return func(e *Editor) { e.in = r }
}

// WithOutput sets where prompt rendering is written. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Editor) { e.rawOut = w }
}

// WithPrompt sets the prompt template.
func WithPrompt(p Prompt) Option {
	return func(e *Editor) { e.prompt = p }
}

// WithHistoryCapacity bounds how many submitted lines are retained.
func WithHistoryCapacity(n int) Option {
	return func(e *Editor) { e.capacity = n }
}

// WithNavigationWindow bounds how far back ArrowUp can page. Zero means
// the full retained history.
func WithNavigationWindow(n int) Option {
	return func(e *Editor) { e.window = n }
}

// WithCompleter sets the autocomplete provider. Without one, Tab is a
// no-op.
func WithCompleter(p complete.Provider) Option {
	return func(e *Editor) { e.completer = p }
}

// WithTerminal sets the raw-mode controller. Without one, input is read
// as-is; tests and piped input run this way.
func WithTerminal(t Terminal) Option {
	return func(e *Editor) { e.terminal = t }
}

// WithLogger sets the logger for non-fatal events such as mode-restore
// failures.
func WithLogger(l Logger) Option {
	return func(e *Editor) { e.logger = l }
}
