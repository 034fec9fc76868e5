package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the key bindings for the main page and the walkthrough.
type KeyMap struct {
	Start    key.Binding
	Next     key.Binding
	Previous key.Binding
	Stop     key.Binding
	CopyPath key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Language key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "start tour")),
		Next:     key.NewBinding(key.WithKeys("right", "n", " "), key.WithHelp("→/n", "next")),
		Previous: key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "previous")),
		Stop:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "end tour")),
		CopyPath: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy arrow path")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show icon text")),
		Language: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "language")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// tourKeys are the bindings shown while a tour is running.
type tourKeys KeyMap

func (k tourKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.CopyPath, k.Stop}
}

func (k tourKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// pageKeys are the bindings shown on the main page.
type pageKeys KeyMap

func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Up, k.Down, k.Select, k.Language, k.Help, k.Quit}
}

func (k pageKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Language},
		{k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}
