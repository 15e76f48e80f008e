package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Toggle   key.Binding
	LoadMore key.Binding
	Compact  key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("j", "down", "tab"), key.WithHelp("j/↓", "next file")),
		Prev:     key.NewBinding(key.WithKeys("k", "up", "shift+tab"), key.WithHelp("k/↑", "prev file")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "collapse")),
		LoadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Compact:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compact/full")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.LoadMore, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle, k.LoadMore},
		{k.Compact, k.Reload, k.Help, k.Quit},
	}
}

// viewportKeys keeps paging in the viewport and frees j/k and space for
// file navigation.
func viewportKeys() viewport.KeyMap {
	km := viewport.DefaultKeyMap()
	km.PageDown = key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("f/pgdn", "page down"))
	km.PageUp = key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b/pgup", "page up"))
	km.Up = key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "scroll up"))
	km.Down = key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "scroll down"))
	return km
}
