// ABOUTME: ContentProvider supplies row text to the renderer

package tui

// ContentProvider returns the text for screen row y, or false when the row
// has no content and should show the banner or the filler marker. It is
// called once per row per frame and must not block.
type ContentProvider interface {
	Row(y int) (string, bool)
}

// Empty is a ContentProvider with no rows.
type Empty struct{}

// Row always reports no content.
func (Empty) Row(int) (string, bool) { return "", false }
