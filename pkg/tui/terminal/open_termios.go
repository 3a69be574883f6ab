// ABOUTME: Opens a POSIX terminal session: termios mode, timeout reads, ioctl then cursor-report sizing.
// ABOUTME: fdReader reads the tty directly so a VTIME timeout reads as "no data" rather than EOF.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Open captures the mode of in and returns a session reading keys from in
// and writing frames to out. The terminal stays in its original mode until
// EnableRaw.
func Open(in, out *os.File, readTimeout time.Duration) (*Session, error) {
	mode := newTermiosMode(int(in.Fd()), readTimeout)
	if err := mode.Capture(); err != nil {
		return nil, err
	}

	r := fdReader{fd: int(in.Fd())}
	return NewSession(r, out, mode,
		directQuery{fd: int(out.Fd()), method: "ioctl"},
		CursorReport{In: r, Out: out},
	), nil
}

// fdReader reads a raw-mode tty. A read that times out returns (0, nil).
type fdReader struct {
	fd int
}

func (r fdReader) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(r.fd, p)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, nil
		case err != nil:
			return 0, err
		}
		return n, nil
	}
}
