// Package term puts a controlling terminal into the byte-at-a-time mode
// line capture needs and restores it afterward. Only canonical mode and
// echo are disabled; output processing and CR translation stay on so the
// terminal keeps behaving normally for everything around the capture.
package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TTY wraps a terminal file descriptor.
type TTY struct {
	fd int
}

// New returns a TTY for the given file, typically os.Stdin.
func New(f *os.File) *TTY {
	return &TTY{fd: int(f.Fd())}
}

// IsTerminal reports whether the descriptor is attached to a terminal.
func (t *TTY) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// Raw disables canonical input and echo, arranging for reads to block
// until at least minBytes bytes are available. The returned function
// restores the previous settings.
func (t *TTY) Raw(minBytes int) (func() error, error) {
	saved, err := unix.IoctlGetTermios(t.fd, ioctlGet)
	if err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = uint8(minBytes)
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSet, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}

	return func() error {
		if err := unix.IoctlSetTermios(t.fd, ioctlSet, saved); err != nil {
			return fmt.Errorf("restoring terminal attributes: %w", err)
		}
		return nil
	}, nil
}
