package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the queue-view key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Join    key.Binding
	Edit    key.Binding
	Call    key.Binding
	Seat    key.Binding
	Remove  key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Theme   key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("j/k", "navigate")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/k", "navigate")),
		Join:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add party")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Call:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "call")),
		Seat:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seat")),
		Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
