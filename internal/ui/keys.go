package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the host bindings plus display-only entries for the canvas
// keys the keyboard mapper owns.
type KeyMap struct {
	// canvas keys, documentation only
	Navigate key.Binding
	Tab      key.Binding
	Jump     key.Binding
	Extend   key.Binding
	Edit     key.Binding
	Toggle   key.Binding
	SelAll   key.Binding
	Escape   key.Binding

	// host keys
	NewBlock    key.Binding
	DeleteBlock key.Binding
	Save        key.Binding
	Reload      key.Binding
	Outline     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move focus")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab/⇧tab", "next/prev block")),
		Jump:     key.NewBinding(key.WithKeys("home", "end"), key.WithHelp("home/end", "first/last block")),
		Extend:   key.NewBinding(key.WithKeys("shift+up", "shift+down"), key.WithHelp("⇧↑/⇧↓", "extend selection")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit block")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "space", "alt+ "), key.WithHelp("space/alt+space", "select/toggle")),
		SelAll:   key.NewBinding(key.WithKeys("ctrl+a", "alt+a"), key.WithHelp("ctrl+a", "select all")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing/clear")),

		NewBlock:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new block")),
		DeleteBlock: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete block")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload from disk")),
		Outline:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "outline")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Edit, k.Toggle, k.NewBlock, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Tab, k.Jump, k.Extend},
		{k.Edit, k.Toggle, k.SelAll, k.Escape},
		{k.NewBlock, k.DeleteBlock, k.Save, k.Reload, k.Outline},
		{k.Help, k.Quit},
	}
}
