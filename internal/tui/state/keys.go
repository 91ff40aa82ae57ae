package state

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Like    key.Binding
	Dismiss key.Binding
	Delete  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch list"),
		),
		Like: key.NewBinding(
			key.WithKeys("l", "enter"),
			key.WithHelp("l", "like"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d", "dismiss"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.Dismiss, k.Delete, k.Switch, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Like, k.Dismiss, k.Delete},
		{k.Help, k.Quit},
	}
}

// forFocus enables only the intents that apply to the focused list.
func (k *keyMap) forFocus(f focus) {
	k.Like.SetEnabled(f == focusPending)
	k.Dismiss.SetEnabled(f == focusPending)
	k.Delete.SetEnabled(f == focusLiked)
}
