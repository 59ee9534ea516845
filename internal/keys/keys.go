// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the payload viewer.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Folding
	Toggle    key.Binding
	Fold      key.Binding
	FoldAll   key.Binding
	UnfoldAll key.Binding
	Close     key.Binding

	// Payload actions
	Delete key.Binding
	Clear  key.Binding
	Yank   key.Binding

	// General
	Theme key.Binding
	Logs  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "page down"),
		),

		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open / fold"),
		),
		Fold: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "toggle fold"),
		),
		FoldAll: key.NewBinding(
			key.WithKeys("Z"),
			key.WithHelp("Z", "fold all"),
		),
		UnfoldAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "unfold all"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close payload"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete payload"),
		),
		Clear: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete all payloads"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy JSON"),
		),

		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug log"),
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

// ShortHelp returns keybindings for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Yank, k.Help, k.Quit}
}

// FullHelp returns keybindings for the help screen, one group per column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown}, // Navigation
		{k.Toggle, k.Fold, k.FoldAll, k.UnfoldAll, k.Close},   // Folding
		{k.Delete, k.Clear, k.Yank},                           // Payloads
		{k.Theme, k.Logs, k.Help, k.Quit},                     // General
	}
}

// HelpSections names the FullHelp groups in order.
var HelpSections = []string{"Navigation", "Folding", "Payloads", "General"}
