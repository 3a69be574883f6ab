// ABOUTME: Tests for Cursor movement and clamping to the window

package tui

import (
	"testing"

	"github.com/mauromedda/bim-go/pkg/tui/terminal"
)

func mustSize(t *testing.T, rows, cols int) terminal.Size {
	t.Helper()
	s, err := terminal.NewSize(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCursor_Clamp(t *testing.T) {
	t.Parallel()

	size := mustSize(t, 20, 80)
	tests := []struct {
		name string
		in   Cursor
		want Cursor
	}{
		{name: "inside", in: Cursor{X: 10, Y: 5}, want: Cursor{X: 10, Y: 5}},
		{name: "left of origin", in: Cursor{X: -1, Y: 0}, want: Cursor{X: 0, Y: 0}},
		{name: "above origin", in: Cursor{X: 0, Y: -1}, want: Cursor{X: 0, Y: 0}},
		{name: "past right edge", in: Cursor{X: 80, Y: 3}, want: Cursor{X: 79, Y: 3}},
		{name: "past bottom edge", in: Cursor{X: 3, Y: 20}, want: Cursor{X: 3, Y: 19}},
		{name: "far corner", in: Cursor{X: 500, Y: 500}, want: Cursor{X: 79, Y: 19}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.Clamp(size); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCursor_Move(t *testing.T) {
	t.Parallel()

	got := Cursor{X: 2, Y: 3}.Move(-1, 4)
	if want := (Cursor{X: 1, Y: 7}); got != want {
		t.Errorf("Move = %+v, want %+v", got, want)
	}
}
