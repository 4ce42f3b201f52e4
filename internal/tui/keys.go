package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reset  key.Binding
	Next   key.Binding
	Select key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Next:   key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next")),
		Select: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "level")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag / games")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Reset, k.Select, k.Back, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Reset, k.Select},
		{k.Back, k.Help, k.Quit},
	}
}
