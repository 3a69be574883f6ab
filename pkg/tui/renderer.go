// ABOUTME: Renderer composes a full frame (rows, banner, filler, cursor) into a FrameBuffer
// ABOUTME: The cursor is hidden while rows are drawn and the frame goes out in one write

package tui

import (
	"fmt"
	"io"

	"github.com/mauromedda/bim-go/pkg/tui/ansi"
	"github.com/mauromedda/bim-go/pkg/tui/terminal"
	"github.com/mauromedda/bim-go/pkg/tui/width"
)

// FillerMarker starts every row that has no content.
const FillerMarker = "~"

// Renderer draws frames to a terminal stream.
type Renderer struct {
	out    io.Writer
	banner string
}

// NewRenderer returns a Renderer writing to out. banner is centred on the
// row a third of the way down when that row has no content; empty means
// no banner.
func NewRenderer(out io.Writer, banner string) *Renderer {
	return &Renderer{out: out, banner: banner}
}

// Refresh draws one frame of the given size with the cursor at cur. The
// cursor must already be clamped to size.
func (r *Renderer) Refresh(size terminal.Size, cur Cursor, content ContentProvider) error {
	if size.IsZero() {
		return fmt.Errorf("refresh: %w", terminal.ErrProbe)
	}
	if content == nil {
		content = Empty{}
	}

	fb := NewFrameBuffer(size.Rows() * (size.Cols() + len(ansi.ClearLine) + len(ansi.LineBreak)))
	if err := r.compose(fb, size, cur, content); err != nil {
		return err
	}
	return fb.Flush(r.out)
}

func (r *Renderer) compose(fb *FrameBuffer, size terminal.Size, cur Cursor, content ContentProvider) error {
	if err := fb.AppendString(ansi.HideCursor + ansi.CursorHome); err != nil {
		return err
	}

	rows, cols := size.Rows(), size.Cols()
	bannerRow := rows / 3
	for y := 0; y < rows; y++ {
		if err := fb.AppendString(r.row(y, bannerRow, cols, content)); err != nil {
			return err
		}
		if err := fb.AppendString(ansi.ClearLine); err != nil {
			return err
		}
		if y < rows-1 {
			if err := fb.AppendString(ansi.LineBreak); err != nil {
				return err
			}
		}
	}

	if err := fb.AppendString(ansi.CursorTo(cur.Y+1, cur.X+1)); err != nil {
		return err
	}
	return fb.AppendString(ansi.ShowCursor)
}

func (r *Renderer) row(y, bannerRow, cols int, content ContentProvider) string {
	if text, ok := content.Row(y); ok {
		return width.Truncate(text, cols)
	}
	if y == bannerRow && r.banner != "" {
		return width.Center(r.banner, FillerMarker, cols)
	}
	return FillerMarker
}
