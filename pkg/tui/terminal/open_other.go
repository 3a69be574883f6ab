//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd || windows)

package terminal

import (
	"fmt"
	"os"
	"runtime"
	"time"
)

// Open reports that this platform has no raw-mode support.
func Open(in, out *os.File, readTimeout time.Duration) (*Session, error) {
	return nil, fmt.Errorf("%w: unsupported platform %s", ErrModeQuery, runtime.GOOS)
}
