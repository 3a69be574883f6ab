// ABOUTME: Display width of row text by grapheme cluster; truncation to a column budget and centring
// ABOUTME: Text is NFC-normalised first so composed and decomposed input measure the same

package width

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// replacement stands in for control characters, which a row must never
// send to the terminal.
const replacement = '?'

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	s = norm.NFC.String(s)
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// Truncate returns the longest prefix of s that fits in cols cells, cut on a
// grapheme boundary. A wide character that would straddle the edge is
// dropped. Control characters are replaced with '?'.
func Truncate(s string, cols int) string {
	if cols <= 0 || s == "" {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) > cols {
			return s[:cols]
		}
		return s
	}

	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if isControl(cluster) {
			cluster = string(replacement)
		}
		w := graphemeWidth(cluster)
		if used+w > cols {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}

// Center places text in the middle of a cols-wide row. When there is room
// to the left, the row starts with marker and the rest of the left margin
// is blank. Text wider than the row is truncated.
func Center(text, marker string, cols int) string {
	text = Truncate(text, cols)
	padding := (cols - Width(text)) / 2
	if padding <= 0 {
		return text
	}

	var b strings.Builder
	b.Grow(padding + len(text))
	if mw := Width(marker); marker != "" && mw <= padding {
		b.WriteString(marker)
		padding -= mw
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(text)
	return b.String()
}

// isPlainASCII reports whether s holds only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

func isControl(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// graphemeWidth returns the display width of a single grapheme cluster,
// taken from its first rune.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
