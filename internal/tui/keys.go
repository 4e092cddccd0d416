package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the directory browser. Cursor movement
// inside the table uses the table's own bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	Parent     key.Binding
	Back       key.Binding
	Forward    key.Binding
	Home       key.Binding
	Goto       key.Binding
	Breadcrumb key.Binding
	Refresh    key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
	Submit     key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter/l", "open directory"),
		),
		Parent: key.NewBinding(
			key.WithKeys("backspace", "-"),
			key.WithHelp("⌫/-", "parent directory"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "alt+left"),
			key.WithHelp("←", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "alt+right"),
			key.WithHelp("→", "forward"),
		),
		Home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "home"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to path"),
		),
		Breadcrumb: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to breadcrumb"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r/f5", "refresh"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Parent, k.Back, k.Forward, k.Goto, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Parent},
		{k.Back, k.Forward, k.Home, k.Breadcrumb},
		{k.Goto, k.Refresh, k.Copy},
		{k.Help, k.Quit},
	}
}
