package outline

import "github.com/charmbracelet/bubbles/key"

type outlineKeyMap struct {
	up         key.Binding
	down       key.Binding
	pageUp     key.Binding
	pageDown   key.Binding
	top        key.Binding
	bottom     key.Binding
	addNode    key.Binding
	rename     key.Binding
	deleteNode key.Binding
	yank       key.Binding
	submit     key.Binding
	cancel     key.Binding
	quit       key.Binding
}

func newOutlineKeyMap() *outlineKeyMap {
	return &outlineKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		pageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		pageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		addNode: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add section"),
		),
		rename: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename"),
		),
		deleteNode: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank content"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
