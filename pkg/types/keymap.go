package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for both screens.
// It lives in pkg/types so the shell and the help footer share it.
type KeyMap struct {
	// General
	Toggle key.Binding
	Quit   key.Binding

	// Editor screen
	Save       key.Binding
	Close      key.Binding
	SwitchPane key.Binding
	FocusTree  key.Binding

	// Tree navigation, handled by the tree itself
	Up           key.Binding
	Down         key.Binding
	Collapse     key.Binding
	Open         key.Binding
	ToggleHidden key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "file explorer"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		FocusTree: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "tree"),
		),
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
		Open: key.NewBinding(
			key.WithKeys("right", "l", "enter"),
			key.WithHelp("→/l/enter", "open"),
		),
		ToggleHidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "hidden files"),
		),
	}
}

// HomeKeys are the bindings shown on the Home screen.
func (k KeyMap) HomeKeys() []key.Binding {
	return []key.Binding{k.Toggle, k.Quit}
}

// ShortHelp implements help.KeyMap for the Editor screen.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Close, k.SwitchPane, k.Toggle, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Collapse, k.Open, k.ToggleHidden},
		{k.Save, k.Close, k.SwitchPane, k.FocusTree},
		{k.Toggle, k.Quit},
	}
}
