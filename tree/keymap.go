package tree

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/charmbracelet/vlist/scroll"
)

// KeyMap defines the tree's navigation bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Toggle   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns the default tree bindings.
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
		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter", "toggle"),
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
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
	}
}

// SetKeyMap replaces the tree's key bindings.
func (t *Tree) SetKeyMap(km KeyMap) { t.keyMap = km }

// HandleKey dispatches a key press to the matching navigation or
// structure operation. Under PolicySticky the movement keys scroll the
// viewport instead of moving the selection. It reports whether the key
// was handled.
func (t *Tree) HandleKey(msg tea.KeyPressMsg) bool {
	if t.policy == scroll.PolicySticky {
		if t.handleStickyKey(msg) {
			return true
		}
	} else {
		switch {
		case key.Matches(msg, t.keyMap.Up):
			t.SelectPrev()
			return true
		case key.Matches(msg, t.keyMap.Down):
			t.SelectNext()
			return true
		case key.Matches(msg, t.keyMap.PageUp):
			t.PageUp()
			return true
		case key.Matches(msg, t.keyMap.PageDown):
			t.PageDown()
			return true
		case key.Matches(msg, t.keyMap.Home):
			t.SelectFirst()
			return true
		case key.Matches(msg, t.keyMap.End):
			t.SelectLast()
			return true
		}
	}

	switch {
	case key.Matches(msg, t.keyMap.Collapse):
		t.Collapse()
		return true
	case key.Matches(msg, t.keyMap.Expand):
		t.Expand()
		return true
	case key.Matches(msg, t.keyMap.Toggle):
		t.Toggle()
		return true
	}
	return false
}

func (t *Tree) handleStickyKey(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, t.keyMap.Up):
		t.ScrollBy(-1)
	case key.Matches(msg, t.keyMap.Down):
		t.ScrollBy(1)
	case key.Matches(msg, t.keyMap.PageUp):
		t.ScrollBy(-t.pageStep())
	case key.Matches(msg, t.keyMap.PageDown):
		t.ScrollBy(t.pageStep())
	case key.Matches(msg, t.keyMap.Home):
		t.ScrollToTop()
	case key.Matches(msg, t.keyMap.End):
		// Resume following; the next Draw lands on the true bottom.
		t.scroll.Reattach()
	default:
		return false
	}
	return true
}
