package editor

import "errors"

var (
	// ErrTerminalMode indicates raw mode could not be acquired. The
	// capture aborts before reading any input.
	ErrTerminalMode = errors.New("terminal mode acquisition failed")

	// ErrInterrupted is returned when the user presses Ctrl-C in normal
	// editing mode.
	ErrInterrupted = errors.New("capture interrupted")
)
