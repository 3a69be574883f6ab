// ABOUTME: Tests for cursor positioning sequences.
// ABOUTME: Checks 1-based formatting and append reuse.

package ansi

import "testing"

func TestCursorTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		row, col int
		want     string
	}{
		{name: "origin", row: 1, col: 1, want: "\x1b[1;1H"},
		{name: "bottom right 80x24", row: 24, col: 80, want: "\x1b[24;80H"},
		{name: "wide", row: 3, col: 200, want: "\x1b[3;200H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CursorTo(tt.row, tt.col); got != tt.want {
				t.Errorf("CursorTo(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestAppendCursorTo_KeepsPrefix(t *testing.T) {
	t.Parallel()

	got := AppendCursorTo([]byte(ShowCursor), 2, 5)
	if want := ShowCursor + "\x1b[2;5H"; string(got) != want {
		t.Errorf("AppendCursorTo = %q, want %q", got, want)
	}
}
