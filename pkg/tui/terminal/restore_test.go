// ABOUTME: Tests for panic recovery closing the session before reporting
// ABOUTME: Verifies the session is restored and the exit code is 1

package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestRestoreAfterPanic_ClosesAndReports(t *testing.T) {
	t.Parallel()

	s, mode, _ := newTestSession(t, "")
	if err := s.EnableRaw(); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	restoreAfterPanic(s, "boom", &stderr)

	if mode.IsRaw() {
		t.Error("expected mode restored after panic")
	}
	if !strings.Contains(stderr.String(), "panic: boom") {
		t.Errorf("report = %q, want panic value", stderr.String())
	}
}

func TestRestoreOnPanic_ExitsWithOne(t *testing.T) {
	saved := exit
	defer func() { exit = saved }()

	code := -1
	exit = func(c int) { code = c }

	s, mode, _ := newTestSession(t, "")
	if err := s.EnableRaw(); err != nil {
		t.Fatal(err)
	}

	func() {
		defer RestoreOnPanic(s)
		panic("test panic")
	}()

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if mode.RestoreCount() != 1 {
		t.Errorf("RestoreCount() = %d, want 1", mode.RestoreCount())
	}
}

func TestRestoreOnPanic_NoPanic(t *testing.T) {
	saved := exit
	defer func() { exit = saved }()

	called := false
	exit = func(int) { called = true }

	s, mode, _ := newTestSession(t, "")

	func() {
		defer RestoreOnPanic(s)
	}()

	if called {
		t.Error("exit should not be called when no panic occurs")
	}
	if mode.RestoreCount() != 0 {
		t.Error("session should stay open when no panic occurs")
	}
}
