// ABOUTME: Cursor position report probe: push the cursor to the far corner and ask where it is.
// ABOUTME: ParseCursorReport validates the ESC [ row ; col R reply.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/mauromedda/bim-go/pkg/tui/ansi"
)

// reportScratch bounds how many reply bytes are read.
const reportScratch = 32

// CursorReport measures the window by moving the cursor past the bottom-right
// edge and requesting a cursor position report. In must be in raw mode so
// the reply is readable byte by byte.
type CursorReport struct {
	In  io.Reader
	Out io.Writer
}

// Method names the strategy.
func (CursorReport) Method() string { return "cursor" }

// QuerySize runs the probe.
func (c CursorReport) QuerySize() (Size, error) {
	if _, err := io.WriteString(c.Out, ansi.CursorFarEnd+ansi.ReportCursor); err != nil {
		return Size{}, fmt.Errorf("%w: writing cursor report request: %w", ErrProbe, err)
	}
	return ParseCursorReport(readReport(c.In))
}

// readReport collects reply bytes up to and excluding 'R'. It stops early
// when a read fails or returns nothing, or when the scratch space is full.
func readReport(r io.Reader) []byte {
	buf := make([]byte, 0, reportScratch)
	var b [1]byte
	for len(buf) < reportScratch-1 {
		n, err := r.Read(b[:])
		if n != 1 || err != nil {
			break
		}
		if b[0] == 'R' {
			break
		}
		buf = append(buf, b[0])
	}
	return buf
}

// ParseCursorReport parses a reply of the form ESC [ row ; col, with or
// without the closing 'R'. Values are returned as the terminal reported them.
func ParseCursorReport(reply []byte) (Size, error) {
	reply = bytes.TrimSuffix(reply, []byte("R"))
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return Size{}, fmt.Errorf("%w: reply %q lacks ESC [ prefix", ErrProbeParse, reply)
	}

	rowText, colText, ok := bytes.Cut(reply[2:], []byte(";"))
	if !ok {
		return Size{}, fmt.Errorf("%w: reply %q lacks ';'", ErrProbeParse, reply)
	}
	rows, err := strconv.Atoi(string(rowText))
	if err != nil {
		return Size{}, fmt.Errorf("%w: row %q: %w", ErrProbeParse, rowText, err)
	}
	cols, err := strconv.Atoi(string(colText))
	if err != nil {
		return Size{}, fmt.Errorf("%w: column %q: %w", ErrProbeParse, colText, err)
	}
	return NewSize(rows, cols)
}
