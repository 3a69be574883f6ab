// ABOUTME: Session owns the terminal for one editor run: mode, geometry strategies, key source, output.
// ABOUTME: Close clears the screen and restores the captured mode exactly once.

package terminal

import (
	"errors"
	"io"
	"sync"

	"github.com/mauromedda/bim-go/internal/log"
	"github.com/mauromedda/bim-go/pkg/tui/ansi"
	"github.com/mauromedda/bim-go/pkg/tui/input"
)

// Session is the explicitly passed terminal state of one run. It is used
// from a single goroutine; only Close is safe to call more than once.
type Session struct {
	in      io.Reader
	out     io.Writer
	mode    ModeController
	queries []SizeQuery
	keys    input.KeyReader

	raw       bool
	closeOnce sync.Once
	closeErr  error
}

// NewSession assembles a session from its parts. The mode must already be
// captured. Keys are decoded from in unless the platform supplies its own
// key source.
func NewSession(in io.Reader, out io.Writer, mode ModeController, queries ...SizeQuery) *Session {
	return &Session{
		in:      in,
		out:     out,
		mode:    mode,
		queries: queries,
		keys:    input.NewDecoder(in),
	}
}

// EnableRaw switches the terminal to raw mode.
func (s *Session) EnableRaw() error {
	if err := s.mode.Enable(); err != nil {
		return err
	}
	s.raw = true
	log.Debug("raw mode enabled")
	return nil
}

// Probe determines the current window size and the method that found it.
func (s *Session) Probe() (Size, string, error) {
	size, method, err := ProbeSize(s.queries...)
	if err != nil {
		return Size{}, "", err
	}
	log.Debug("window %dx%d via %s", size.Cols(), size.Rows(), method)
	return size, method, nil
}

// Keys returns the session's key source.
func (s *Session) Keys() input.KeyReader {
	return s.keys
}

// Write sends p to the terminal.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Close clears the screen, homes the cursor and restores the original mode.
// Later calls return the first call's result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.raw {
			// Best effort: a failed clear must not prevent the restore.
			if _, err := io.WriteString(s.out, ansi.ClearScreen+ansi.CursorHome); err != nil {
				log.Warn("clearing screen on close: %v", err)
			}
		}
		if err := s.mode.Restore(); err != nil {
			errs = append(errs, err)
		}
		s.closeErr = errors.Join(errs...)
		log.Debug("terminal mode restored")
	})
	return s.closeErr
}
