// ABOUTME: Maps Windows console key events (virtual-key code, character, Ctrl state) to Keys.
// ABOUTME: Pure function so it can be tested on every platform.

package key

// Virtual-key codes reported in console KEY_EVENT records.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkEscape  = 0x1B
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkDelete  = 0x2E
	vkA       = 0x41
	vkZ       = 0x5A
)

var consoleKeys = map[uint16]Key{
	vkBack:   {Type: KeyBackspace},
	vkTab:    {Type: KeyTab},
	vkReturn: {Type: KeyEnter},
	vkEscape: {Type: KeyEscape},
	vkPrior:  {Type: KeyPageUp},
	vkNext:   {Type: KeyPageDown},
	vkEnd:    {Type: KeyEnd},
	vkHome:   {Type: KeyHome},
	vkLeft:   {Type: KeyLeft},
	vkUp:     {Type: KeyUp},
	vkRight:  {Type: KeyRight},
	vkDown:   {Type: KeyDown},
	vkDelete: {Type: KeyDelete},
}

// FromConsoleKey maps one key-down console event to a Key. ch is the UTF-16
// character the console translated the key to, or 0. Modifier-only presses
// and unmapped keys without a character yield None. A printable ch wins
// over ctrl, so layouts that compose characters with Ctrl held still type.
func FromConsoleKey(vk, ch uint16, ctrl bool) Key {
	switch vk {
	case vkShift, vkControl, vkMenu, vkCapital:
		return None
	}

	if ctrl && ch < 0x20 {
		if vk >= vkA && vk <= vkZ {
			return Ctrl(rune('a' + vk - vkA))
		}
		if ch >= 1 && ch <= 26 {
			return Ctrl(rune('a' + ch - 1))
		}
	}

	if k, ok := consoleKeys[vk]; ok {
		return k
	}

	switch {
	case ch == 0:
		return None
	case ch >= 1 && ch <= 26:
		return Ctrl(rune('a' + ch - 1))
	case ch == 0x7f:
		return Key{Type: KeyBackspace}
	case ch < 0x20:
		return None
	case ch >= 0xD800 && ch <= 0xDFFF:
		// Surrogate halves are not assembled into runes.
		return None
	}
	return Key{Type: KeyRune, Rune: rune(ch)}
}
