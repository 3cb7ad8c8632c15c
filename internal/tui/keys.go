package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Browse   key.Binding
	Manage   key.Binding
	History  key.Binding
	Options  key.Binding
	Accounts key.Binding
	Session  key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Archive key.Binding
	Filter  key.Binding
	Restore key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Browse:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "browse")),
	Manage:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "manage")),
	History:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "history")),
	Options:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "options")),
	Accounts: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "accounts")),
	Session:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login/logout")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Archive:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
	Filter:   key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
	Restore:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous page")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
}
