// ABOUTME: Defines the ModeController and SizeQuery contracts and the terminal error taxonomy.
// ABOUTME: Platform files supply the real implementations; VirtualMode and fixed queries serve tests.

package terminal

import (
	"errors"
	"fmt"
)

// Errors reported while taking over the terminal. Concrete failures wrap one
// of these together with the OS cause.
var (
	ErrModeQuery = errors.New("cannot read terminal mode")
	ErrModeSet   = errors.New("cannot set terminal mode")
	ErrProbe     = errors.New("cannot determine window size")

	// ErrProbeParse is a probe failure caused by a malformed cursor report.
	ErrProbeParse = fmt.Errorf("%w: malformed cursor position report", ErrProbe)
)

// ModeController switches a terminal between its original mode and raw mode.
// Capture must succeed before Enable; Restore re-applies the captured mode
// and is a no-op if nothing was captured.
type ModeController interface {
	Capture() error
	Enable() error
	Restore() error
}

// SizeQuery is one strategy for finding the window geometry. Method names
// the strategy in logs and in the debug report.
type SizeQuery interface {
	Method() string
	QuerySize() (Size, error)
}
