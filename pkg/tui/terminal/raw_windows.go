// ABOUTME: Windows ModeController over the console API: input and output handle modes.
// ABOUTME: Raw input drops echo, line and processed input; output enables VT processing without auto-wrap.

//go:build windows

package terminal

import (
	"errors"
	"fmt"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/windows"
)

// consoleMode switches a console's input and output handles between their
// captured modes and raw mode.
type consoleMode struct {
	in, out         windows.Handle
	origIn, origOut uint32
	captured        bool
}

func newConsoleMode(in, out windows.Handle) *consoleMode {
	return &consoleMode{in: in, out: out}
}

// Capture reads both handle modes. A Cygwin or MSYS pty is not a console
// and is rejected.
func (m *consoleMode) Capture() error {
	if isatty.IsCygwinTerminal(uintptr(m.in)) {
		return fmt.Errorf("%w: cygwin/msys pty is not a console", ErrModeQuery)
	}
	if err := windows.GetConsoleMode(m.in, &m.origIn); err != nil {
		return fmt.Errorf("%w: input console mode: %w", ErrModeQuery, err)
	}
	if err := windows.GetConsoleMode(m.out, &m.origOut); err != nil {
		return fmt.Errorf("%w: output console mode: %w", ErrModeQuery, err)
	}
	m.captured = true
	return nil
}

// Enable applies raw modes derived from the captured ones.
func (m *consoleMode) Enable() error {
	if !m.captured {
		return fmt.Errorf("%w: mode not captured", ErrModeSet)
	}

	rawIn := m.origIn &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	if err := windows.SetConsoleMode(m.in, rawIn); err != nil {
		return fmt.Errorf("%w: input console mode: %w", ErrModeSet, err)
	}

	rawOut := m.origOut&^windows.ENABLE_WRAP_AT_EOL_OUTPUT |
		windows.DISABLE_NEWLINE_AUTO_RETURN | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING
	if err := windows.SetConsoleMode(m.out, rawOut); err != nil {
		return fmt.Errorf("%w: output console mode: %w", ErrModeSet, err)
	}
	return nil
}

// Restore re-applies both captured modes, attempting each even if the
// other fails.
func (m *consoleMode) Restore() error {
	if !m.captured {
		return nil
	}
	var errs []error
	if err := windows.SetConsoleMode(m.in, m.origIn); err != nil {
		errs = append(errs, fmt.Errorf("%w: restoring input console mode: %w", ErrModeSet, err))
	}
	if err := windows.SetConsoleMode(m.out, m.origOut); err != nil {
		errs = append(errs, fmt.Errorf("%w: restoring output console mode: %w", ErrModeSet, err))
	}
	return errors.Join(errs...)
}

// consoleQuery reads the visible window rectangle of the output buffer.
type consoleQuery struct {
	out windows.Handle
}

func (consoleQuery) Method() string { return "console" }

func (q consoleQuery) QuerySize() (Size, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(q.out, &info); err != nil {
		return Size{}, err
	}
	cols := int(info.Window.Right - info.Window.Left + 1)
	rows := int(info.Window.Bottom - info.Window.Top + 1)
	return NewSize(rows, cols)
}
