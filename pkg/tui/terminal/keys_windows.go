// ABOUTME: Console key source: waits on the input handle, then reads one input record.
// ABOUTME: Key-down records map through key.FromConsoleKey; everything else is "no key".

//go:build windows

package terminal

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/mauromedda/bim-go/pkg/tui/input"
	"github.com/mauromedda/bim-go/pkg/tui/key"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInputW = kernel32.NewProc("ReadConsoleInputW")
)

const (
	keyEventType     = 0x0001
	rightAltPressed  = 0x0001
	leftAltPressed   = 0x0002
	rightCtrlPressed = 0x0004
	leftCtrlPressed  = 0x0008
)

// inputRecord mirrors INPUT_RECORD; event holds the largest union member.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// keyEventRecord mirrors KEY_EVENT_RECORD with the UTF-16 character.
type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

type consoleKeys struct {
	in      windows.Handle
	timeout uint32 // milliseconds
}

func newConsoleKeys(in windows.Handle, readTimeout time.Duration) *consoleKeys {
	return &consoleKeys{in: in, timeout: uint32(readTimeout.Milliseconds())}
}

// ReadKey waits up to the read timeout for one console input record.
func (c *consoleKeys) ReadKey() (key.Key, error) {
	ev, err := windows.WaitForSingleObject(c.in, c.timeout)
	switch {
	case err != nil:
		return key.None, fmt.Errorf("%w: waiting for console input: %w", input.ErrRead, err)
	case ev == uint32(windows.WAIT_TIMEOUT):
		return key.None, nil
	case ev != uint32(windows.WAIT_OBJECT_0):
		return key.None, fmt.Errorf("%w: unexpected wait result %#x", input.ErrRead, ev)
	}

	var rec inputRecord
	var n uint32
	r1, _, callErr := procReadConsoleInputW.Call(
		uintptr(c.in),
		uintptr(unsafe.Pointer(&rec)),
		1,
		uintptr(unsafe.Pointer(&n)),
	)
	if r1 == 0 {
		return key.None, fmt.Errorf("%w: ReadConsoleInput: %w", input.ErrRead, callErr)
	}
	if n == 0 || rec.eventType != keyEventType {
		return key.None, nil
	}

	kr := (*keyEventRecord)(unsafe.Pointer(&rec.event[0]))
	if kr.keyDown == 0 {
		return key.None, nil
	}
	// AltGr arrives as LEFT_CTRL|RIGHT_ALT, so Ctrl with Alt is never a chord.
	state := kr.controlKeyState
	ctrl := state&(leftCtrlPressed|rightCtrlPressed) != 0 &&
		state&(leftAltPressed|rightAltPressed) == 0
	return key.FromConsoleKey(kr.virtualKeyCode, kr.unicodeChar, ctrl), nil
}
