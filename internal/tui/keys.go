package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by the prompt models.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

// DefaultKeyMap pairs arrow keys with vim-style j/k.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

func helpLine(bindings ...key.Binding) string {
	line := ""
	for i, b := range bindings {
		h := b.Help()
		if i > 0 {
			line += "  "
		}
		line += "[" + h.Key + "] " + h.Desc
	}
	return line
}
