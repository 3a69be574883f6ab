// ABOUTME: Size holds probed window geometry; ProbeSize runs a fallback chain of SizeQuery strategies.
// ABOUTME: The direct query uses x/term; the cursor report fallback lives in cpr.go.

package terminal

import (
	"errors"
	"fmt"

	"golang.org/x/term"
)

// Size is a window geometry in character cells, as reported by the terminal.
// Both dimensions are always positive.
type Size struct {
	rows int
	cols int
}

// NewSize validates rows and cols. Non-positive values fail with ErrProbe.
func NewSize(rows, cols int) (Size, error) {
	if rows <= 0 || cols <= 0 {
		return Size{}, fmt.Errorf("%w: got %dx%d", ErrProbe, rows, cols)
	}
	return Size{rows: rows, cols: cols}, nil
}

// Rows returns the number of screen rows.
func (s Size) Rows() int { return s.rows }

// Cols returns the number of screen columns.
func (s Size) Cols() int { return s.cols }

// IsZero reports whether s was never probed.
func (s Size) IsZero() bool { return s.rows == 0 && s.cols == 0 }

// String formats the size the way the debug run reports it.
func (s Size) String() string {
	return fmt.Sprintf("rows: %d, cols: %d", s.rows, s.cols)
}

// ProbeSize tries each query in order and returns the first positive
// geometry together with the method that produced it. If every query
// fails the error wraps ErrProbe and each strategy's failure.
func ProbeSize(queries ...SizeQuery) (Size, string, error) {
	var errs []error
	for _, q := range queries {
		size, err := q.QuerySize()
		if err == nil {
			return size, q.Method(), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", q.Method(), err))
	}
	if len(errs) == 0 {
		return Size{}, "", fmt.Errorf("%w: no size strategy available", ErrProbe)
	}
	return Size{}, "", fmt.Errorf("%w: %w", ErrProbe, errors.Join(errs...))
}

// directQuery asks the host for the window size of fd in a single call.
// A zero answer counts as a failure so the chain can fall back.
type directQuery struct {
	fd     int
	method string
}

func (q directQuery) Method() string { return q.method }

func (q directQuery) QuerySize() (Size, error) {
	cols, rows, err := term.GetSize(q.fd)
	if err != nil {
		return Size{}, err
	}
	return NewSize(rows, cols)
}

// FixedSize is a SizeQuery that always answers with the same geometry.
// Tests and headless callers use it in place of a real terminal.
type FixedSize struct {
	Name       string
	Rows, Cols int
}

// Method returns the configured name, or "fixed".
func (f FixedSize) Method() string {
	if f.Name == "" {
		return "fixed"
	}
	return f.Name
}

// QuerySize returns the configured geometry.
func (f FixedSize) QuerySize() (Size, error) {
	return NewSize(f.Rows, f.Cols)
}
