package list

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/charmbracelet/vlist/scroll"
)

// KeyMap holds the navigation key bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns the default navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
	}
}

// SetKeyMap replaces the navigation bindings.
func (l *List) SetKeyMap(km KeyMap) {
	l.keyMap = km
}

// HandleKey maps a key press onto selection or scroll mutations and
// reports whether it was handled.
//
// Under PolicySticky the same keys drive the offset instead of the
// selection: movement pauses the bottom-follow, while End resumes it
// without touching the offset, so the next render pins to the true
// bottom even if content grew since the key press.
func (l *List) HandleKey(msg tea.KeyPressMsg) bool {
	if l.policy == scroll.PolicySticky {
		return l.handleStickyKey(msg)
	}

	switch {
	case key.Matches(msg, l.keyMap.Up):
		l.SelectPrev()
	case key.Matches(msg, l.keyMap.Down):
		l.SelectNext()
	case key.Matches(msg, l.keyMap.PageUp):
		l.PageUp()
	case key.Matches(msg, l.keyMap.PageDown):
		l.PageDown()
	case key.Matches(msg, l.keyMap.Home):
		l.SelectFirst()
	case key.Matches(msg, l.keyMap.End):
		l.SelectLast()
	default:
		return false
	}
	return true
}

func (l *List) handleStickyKey(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, l.keyMap.Up):
		l.ScrollBy(-1)
	case key.Matches(msg, l.keyMap.Down):
		l.ScrollBy(1)
	case key.Matches(msg, l.keyMap.PageUp):
		l.ScrollBy(-l.pageStep())
	case key.Matches(msg, l.keyMap.PageDown):
		l.ScrollBy(l.pageStep())
	case key.Matches(msg, l.keyMap.Home):
		l.ScrollToTop()
	case key.Matches(msg, l.keyMap.End):
		l.scroll.Reattach()
	default:
		return false
	}
	return true
}
