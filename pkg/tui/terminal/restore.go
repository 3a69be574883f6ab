// ABOUTME: RestoreOnPanic recovers from panics, closes the session, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// exit is swapped in tests.
var exit = os.Exit

// RestoreOnPanic should be deferred right after the session is opened. On
// panic it closes the session (clearing the screen and restoring the mode),
// prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(c io.Closer) {
	r := recover()
	if r == nil {
		return
	}
	restoreAfterPanic(c, r, os.Stderr)
	exit(1)
}

func restoreAfterPanic(c io.Closer, r any, w io.Writer) {
	_ = c.Close()
	fmt.Fprintf(w, "\npanic: %v\n\n%s\n", r, debug.Stack())
}
