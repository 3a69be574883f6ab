//go:build !unix

package terminal

import "os"

// NotifyResize returns a nil channel: there is no resize signal here.
func NotifyResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}

// TerminationSignals lists the signals that end the editor from outside.
func TerminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
