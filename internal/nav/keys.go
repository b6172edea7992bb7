package nav

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the traversal bindings. It implements help.KeyMap so
// hosts can feed it straight to bubbles/help.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first tab"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last tab"),
		),
	}
}

// ShortHelp returns the bindings for the one-line help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next}
}

// FullHelp returns the bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.First, k.Last}}
}

// KeyMap returns the traversal bindings in effect.
func (m *Manager) KeyMap() KeyMap { return m.keymap }

// SetKeyMap replaces the traversal bindings, e.g. after a config reload.
func (m *Manager) SetKeyMap(km KeyMap) { m.keymap = km }

// HandleKey processes one key press. fromID is the traversal origin: empty
// means the active tab. consumed reports whether the key matched a
// traversal binding and the host should suppress its own handling of it;
// unmatched keys return (false, nil) untouched.
//
// Next and Prev wrap at both ends of the insertion order. With no origin
// at all (nothing active yet), Next lands on the first tab and Prev on the
// last.
func (m *Manager) HandleKey(msg tea.KeyMsg, fromID string) (consumed bool, err error) {
	if m.closed {
		return false, &InvalidStateError{Op: "handle key", Reason: "manager is closed"}
	}

	var delta int
	switch {
	case key.Matches(msg, m.keymap.Next):
		delta = 1
	case key.Matches(msg, m.keymap.Prev):
		delta = -1
	case key.Matches(msg, m.keymap.First):
		if len(m.tabs) == 0 {
			return false, nil
		}
		return true, m.Activate(m.tabs[0].ID)
	case key.Matches(msg, m.keymap.Last):
		if len(m.tabs) == 0 {
			return false, nil
		}
		return true, m.Activate(m.tabs[len(m.tabs)-1].ID)
	default:
		return false, nil
	}

	if len(m.tabs) == 0 {
		return false, nil
	}

	origin := fromID
	if origin == "" {
		origin = m.active
	}
	if origin == "" {
		if delta > 0 {
			return true, m.Activate(m.tabs[0].ID)
		}
		return true, m.Activate(m.tabs[len(m.tabs)-1].ID)
	}

	idx := m.indexOf(origin)
	if idx < 0 {
		return false, &UnknownTabError{ID: origin, Suggestion: m.suggest(origin)}
	}
	n := len(m.tabs)
	target := m.tabs[(idx+delta+n)%n]
	return true, m.Activate(target.ID)
}

func (m *Manager) indexOf(id string) int {
	for i, t := range m.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
