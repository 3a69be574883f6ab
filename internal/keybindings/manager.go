// ABOUTME: Keybinding manager mapping decoded keys to editor actions
// ABOUTME: Builds a reverse lookup table from action bindings for O(1) key-to-action resolution

package keybindings

import (
	"slices"
	"strings"

	"github.com/mauromedda/bim-go/pkg/tui/key"
)

// Action is an editor operation a key can be bound to.
type Action string

const (
	ActionNone      Action = ""
	ActionQuit      Action = "quit"
	ActionUp        Action = "cursorUp"
	ActionDown      Action = "cursorDown"
	ActionLeft      Action = "cursorLeft"
	ActionRight     Action = "cursorRight"
	ActionPageUp    Action = "pageUp"
	ActionPageDown  Action = "pageDown"
	ActionLineStart Action = "lineStart"
	ActionLineEnd   Action = "lineEnd"
)

// Defaults returns the built-in bindings, keyed by action.
func Defaults() map[Action][]string {
	return map[Action][]string{
		ActionQuit:      {"ctrl+q"},
		ActionUp:        {"up"},
		ActionDown:      {"down"},
		ActionLeft:      {"left"},
		ActionRight:     {"right"},
		ActionPageUp:    {"pageup"},
		ActionPageDown:  {"pagedown"},
		ActionLineStart: {"home"},
		ActionLineEnd:   {"end"},
	}
}

// Manager resolves keys to actions.
type Manager struct {
	bindings map[Action][]string
	lookup   map[string]Action
}

// New returns a Manager for bindings. A nil map uses Defaults. The quit
// chord always resolves to ActionQuit, whatever else it is bound to.
func New(bindings map[Action][]string) *Manager {
	if bindings == nil {
		bindings = Defaults()
	}
	m := &Manager{bindings: bindings}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to k, or ActionNone.
func (m *Manager) ActionForKey(k key.Key) Action {
	if k == key.Quit {
		return ActionQuit
	}
	name := keyToString(k)
	if name == "" {
		return ActionNone
	}
	return m.lookup[name]
}

// Conflicts returns, for each key bound to more than one action, the sorted
// list of actions claiming it.
func (m *Manager) Conflicts() map[string][]Action {
	claims := make(map[string][]Action)
	for action, keys := range m.bindings {
		for _, k := range keys {
			claims[k] = append(claims[k], action)
		}
	}
	conflicts := make(map[string][]Action)
	for k, actions := range claims {
		if len(actions) > 1 {
			slices.Sort(actions)
			conflicts[k] = actions
		}
	}
	return conflicts
}

// buildLookup inverts the bindings. When a key is claimed twice the action
// that sorts first wins, so resolution does not depend on map order.
func (m *Manager) buildLookup() {
	m.lookup = make(map[string]Action, len(m.bindings)*2)
	for action, keys := range m.bindings {
		for _, k := range keys {
			if prev, ok := m.lookup[k]; ok && prev < action {
				continue
			}
			m.lookup[k] = action
		}
	}
}

var keyNames = map[key.KeyType]string{
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pageup",
	key.KeyPageDown:  "pagedown",
	key.KeyEscape:    "escape",
}

// keyToString converts a key.Key to the string form used in bindings.
func keyToString(k key.Key) string {
	switch k.Type {
	case key.KeyNone:
		return ""
	case key.KeyRune:
		return string(k.Rune)
	case key.KeyCtrl:
		return "ctrl+" + strings.ToLower(string(k.Rune))
	}
	return keyNames[k.Type]
}
