package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Tab      key.Binding

	// Actions
	Quit      key.Binding
	Filter    key.Binding
	Sort      key.Binding
	Refresh   key.Binding
	Recommend key.Binding
	Logout    key.Binding
	Escape    key.Binding
	NewMovie  key.Binding
	Signup    key.Binding

	// Route shortcuts
	GoHome    key.Binding
	GoMovies  key.Binding
	GoProfile key.Binding
	GoAdmin   key.Binding
	GoInfo    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("h/⌫", "back"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "prev page"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Recommend: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "recommend"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logout"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		NewMovie: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "register movie"),
		),
		Signup: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sign up"),
		),
		GoHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		GoMovies: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "movies"),
		),
		GoProfile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "profile"),
		),
		GoAdmin: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "admin"),
		),
		GoInfo: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "info"),
		),
	}
}
