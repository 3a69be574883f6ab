//go:build windows

package terminal

import (
	"os"
	"time"

	"golang.org/x/sys/windows"
)

// Open captures the console modes of in and out and returns a session
// reading console key records from in. Geometry comes from the console
// alone; there is no cursor report fallback on Windows.
func Open(in, out *os.File, readTimeout time.Duration) (*Session, error) {
	hIn, hOut := windows.Handle(in.Fd()), windows.Handle(out.Fd())

	mode := newConsoleMode(hIn, hOut)
	if err := mode.Capture(); err != nil {
		return nil, err
	}

	s := NewSession(in, out, mode, consoleQuery{out: hOut})
	s.keys = newConsoleKeys(hIn, readTimeout)
	return s, nil
}
