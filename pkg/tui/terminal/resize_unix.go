// ABOUTME: Window resize and termination signal sources for POSIX terminals.

//go:build unix

package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// NotifyResize delivers SIGWINCH on the returned channel until stop is called.
// The channel holds one pending notification; extra signals coalesce.
func NotifyResize() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}

// TerminationSignals lists the signals that end the editor from outside.
func TerminationSignals() []os.Signal {
	return []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP}
}
