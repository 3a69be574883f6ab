// ABOUTME: Escape sequences the editor core writes to the terminal.
// ABOUTME: Shared by the frame renderer, the geometry probe and session restore.

package ansi

import "strconv"

// Sequences used by the renderer and the session.
const (
	HideCursor   = "\x1b[?25l"
	ShowCursor   = "\x1b[?25h"
	CursorHome   = "\x1b[H"
	ClearLine    = "\x1b[K" // erase from cursor to end of line
	ClearScreen  = "\x1b[2J"
	LineBreak    = "\r\n"
	CursorFarEnd = "\x1b[999C\x1b[999B" // terminal clamps to last row/column
	ReportCursor = "\x1b[6n"            // reply: ESC [ row ; col R
)

// CursorTo returns the sequence moving the cursor to the 1-based row and column.
func CursorTo(row, col int) string {
	b := make([]byte, 0, 16)
	return string(AppendCursorTo(b, row, col))
}

// AppendCursorTo appends the CursorTo sequence to dst.
func AppendCursorTo(dst []byte, row, col int) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}
