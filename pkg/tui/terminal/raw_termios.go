// ABOUTME: POSIX ModeController over termios: capture the attributes, derive raw mode, restore.
// ABOUTME: makeRaw is pure so the flag derivation can be checked without a terminal.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// termiosMode switches one tty file descriptor between its captured
// attributes and raw mode.
type termiosMode struct {
	fd    int
	vtime uint8
	orig  *unix.Termios
}

func newTermiosMode(fd int, readTimeout time.Duration) *termiosMode {
	return &termiosMode{fd: fd, vtime: deciseconds(readTimeout)}
}

// Capture reads the current attributes.
func (m *termiosMode) Capture() error {
	if !term.IsTerminal(m.fd) {
		return fmt.Errorf("%w: fd %d is not a terminal", ErrModeQuery, m.fd)
	}
	t, err := unix.IoctlGetTermios(m.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("%w: tcgetattr: %w", ErrModeQuery, err)
	}
	m.orig = t
	return nil
}

// Enable applies raw mode derived from the captured attributes. Pending
// input is flushed.
func (m *termiosMode) Enable() error {
	if m.orig == nil {
		return fmt.Errorf("%w: mode not captured", ErrModeSet)
	}
	raw := makeRaw(*m.orig, m.vtime)
	if err := unix.IoctlSetTermios(m.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("%w: tcsetattr: %w", ErrModeSet, err)
	}
	return nil
}

// Restore re-applies the captured attributes.
func (m *termiosMode) Restore() error {
	if m.orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(m.fd, ioctlSetTermios, m.orig); err != nil {
		return fmt.Errorf("%w: restoring attributes: %w", ErrModeSet, err)
	}
	return nil
}

// makeRaw turns off echo, canonical input, signal keys, extended input
// processing, CR/LF translation, parity checks, stripping and output
// post-processing, and makes reads return after vtime deciseconds.
func makeRaw(t unix.Termios, vtime uint8) unix.Termios {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = vtime
	return t
}

// deciseconds rounds a read timeout to the termios VTIME unit, clamped
// to [1, 255].
func deciseconds(d time.Duration) uint8 {
	ds := (d + 50*time.Millisecond) / (100 * time.Millisecond)
	switch {
	case ds < 1:
		return 1
	case ds > 255:
		return 255
	}
	return uint8(ds)
}
