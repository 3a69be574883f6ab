// ABOUTME: Cursor is the 0-based edit position on screen
// ABOUTME: Move and Clamp keep it inside the window before every refresh

package tui

import "github.com/mauromedda/bim-go/pkg/tui/terminal"

// Cursor is a 0-based screen position: X is the column, Y the row.
type Cursor struct {
	X, Y int
}

// Move returns the cursor shifted by dx columns and dy rows. The result may
// lie outside the window until clamped.
func (c Cursor) Move(dx, dy int) Cursor {
	return Cursor{X: c.X + dx, Y: c.Y + dy}
}

// Clamp returns the cursor limited to [0, cols-1] x [0, rows-1].
func (c Cursor) Clamp(size terminal.Size) Cursor {
	return Cursor{
		X: min(max(c.X, 0), size.Cols()-1),
		Y: min(max(c.Y, 0), size.Rows()-1),
	}
}
