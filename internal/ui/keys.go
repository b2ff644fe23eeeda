package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the App reacts to.
type keyMap struct {
	Down     key.Binding
	Up       key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Open     key.Binding
	Comments key.Binding
	Reload   key.Binding
	Help     key.Binding
	Debug    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l", "next page"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open link"),
	),
	Comments: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "open comment"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload page"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Debug: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "debug log"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp is the status line shown under the menu.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PrevPage, k.NextPage, k.Comments, k.Quit}
}

// FullHelp is shown after pressing "?".
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.PrevPage, k.NextPage},
		{k.Open, k.Comments, k.Reload},
		{k.Help, k.Debug, k.Quit},
	}
}
