// ABOUTME: VirtualMode implements ModeController for tests without a real TTY.
// ABOUTME: Tracks capture/enable/restore calls and can be told to fail any of them.

package terminal

import (
	"fmt"
	"sync"
)

// VirtualMode is a fake ModeController. Its mode is a plain word that raw
// mode flips, so tests can check that Restore brings back the snapshot.
type VirtualMode struct {
	mu sync.Mutex

	// Mode is the current fake terminal mode.
	Mode uint32

	// Fail* make the matching call fail with the matching sentinel.
	FailCapture bool
	FailEnable  bool
	FailRestore bool

	captured     bool
	raw          bool
	snapshot     uint32
	enableCount  int
	restoreCount int
}

// rawBits is what Enable clears to simulate raw mode.
const rawBits = 0xff

// Capture records the current mode.
func (v *VirtualMode) Capture() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.FailCapture {
		return fmt.Errorf("%w: virtual terminal", ErrModeQuery)
	}
	v.snapshot = v.Mode
	v.captured = true
	return nil
}

// Enable clears the low byte of the mode.
func (v *VirtualMode) Enable() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.captured {
		return fmt.Errorf("%w: mode not captured", ErrModeSet)
	}
	if v.FailEnable {
		return fmt.Errorf("%w: virtual terminal", ErrModeSet)
	}
	v.Mode = v.snapshot &^ rawBits
	v.raw = true
	v.enableCount++
	return nil
}

// Restore re-applies the captured mode.
func (v *VirtualMode) Restore() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.captured {
		return nil
	}
	v.restoreCount++
	if v.FailRestore {
		return fmt.Errorf("%w: virtual terminal", ErrModeSet)
	}
	v.Mode = v.snapshot
	v.raw = false
	return nil
}

// --- Test helpers (not part of ModeController) ---

// IsRaw reports whether the fake terminal is in raw mode.
func (v *VirtualMode) IsRaw() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.raw
}

// EnableCount returns how many times Enable succeeded.
func (v *VirtualMode) EnableCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enableCount
}

// RestoreCount returns how many times Restore ran after a capture.
func (v *VirtualMode) RestoreCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.restoreCount
}
