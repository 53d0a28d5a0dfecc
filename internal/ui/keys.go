package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application key bindings
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding

	// Reader specific
	NextChapter key.Binding
	PrevChapter key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FontLarger  key.Binding
	FontSmaller key.Binding
	Fullscreen  key.Binding
	TOC         key.Binding

	// Library specific
	Details  key.Binding
	Reload   key.Binding
	Settings key.Binding

	// General
	Escape key.Binding
	Help   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/^u", "half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/^d", "half page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/l", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h", "previous chapter"),
		),
		NextPage: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous page"),
		),
		FontLarger: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger text"),
		),
		FontSmaller: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller text"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		TOC: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table of contents"),
		),
		Details: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "book details"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload books"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close overlay / exit fullscreen"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle shortcuts"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "back / quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "exit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextChapter, k.PrevChapter, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Enter},
		{k.NextChapter, k.PrevChapter, k.NextPage, k.PrevPage, k.FontLarger, k.FontSmaller, k.Fullscreen, k.TOC},
		{k.Details, k.Reload, k.Settings, k.Escape, k.Help, k.Quit, k.Force},
	}
}
