// ABOUTME: Defines the logical Key type and ParseKey for raw terminal byte sequences.
// ABOUTME: Handles printable runes, Ctrl chords, and delegates escape sequences to the legacy table.

package key

import (
	"fmt"
	"unicode/utf8"
)

// Key is a decoded logical key. The zero value is None: no key arrived
// before the read timeout.
type Key struct {
	Type KeyType
	Rune rune // printable character for KeyRune, lowercase letter for KeyCtrl
}

// KeyType enumerates the kinds of logical keys the editor can receive.
type KeyType int

const (
	KeyNone      KeyType = iota // No key (read timed out)
	KeyRune                     // Printable character
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape, or an escape sequence we do not know
	KeyCtrl                     // Ctrl+letter chord, letter in Rune
)

// None is the "no key" sentinel returned when a read times out.
var None = Key{}

// Quit is the reserved chord that terminates the editor.
var Quit = Ctrl('q')

// Ctrl returns the Ctrl+letter chord for r. Upper-case letters fold to lower case.
func Ctrl(r rune) Key {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return Key{Type: KeyCtrl, Rune: r}
}

// IsNone reports whether k is the "no key" sentinel.
func (k Key) IsNone() bool {
	return k.Type == KeyNone
}

// ParseKey parses one complete raw input sequence into a Key.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return None
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return None
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x00:
		return None
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	case b >= 0x01 && b <= 0x1a:
		return Ctrl(rune('a' + b - 1))
	}
	return None
}

// parseEscapeSequence maps ESC-prefixed data through the legacy table.
// Unknown sequences read as Escape.
func parseEscapeSequence(data string) Key {
	if k, ok := legacySequences[data]; ok {
		return k
	}
	return Key{Type: KeyEscape}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyNone:      "None",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
}

// String returns a human-readable representation of the Key for debug logs.
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return string(k.Rune)
	case KeyCtrl:
		return fmt.Sprintf("Ctrl+%c", k.Rune-('a'-'A'))
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}
