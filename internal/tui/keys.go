package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all dashboard key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Escape    key.Binding

	// Navigation
	NextSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Enter       key.Binding

	// Actions
	Search    key.Binding
	Watchlist key.Binding
	Currency  key.Binding
	Theme     key.Binding
	Refresh   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "back/clear"),
		),

		NextSection: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "list/chart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "pagedown"),
			key.WithHelp("pgdn", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "chart"),
		),

		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("w", " "),
			key.WithHelp("w/space", "star"),
		),
		Currency: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "currency"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Search, k.Enter, k.Watchlist, k.Currency, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Enter, k.NextSection, k.Escape, k.Search},
		{k.Watchlist, k.Currency, k.Theme, k.Refresh},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
