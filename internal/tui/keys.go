package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	History  key.Binding
	Language key.Binding
	Up       key.Binding
	Down     key.Binding
	Load     key.Binding
	Remove   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "suggest"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+h", "tab"),
		key.WithHelp("ctrl+h", "history"),
	),
	Language: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "language"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Load: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "load"),
	),
	Remove: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "remove"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.History, k.Language, k.Quit}
}

func (k keyMap) historyHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Load, k.Remove, k.Back}
}
