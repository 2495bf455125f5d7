package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the board view.
type keyMap struct {
	up          key.Binding
	down        key.Binding
	prev        key.Binding
	next        key.Binding
	add         key.Binding
	remove      key.Binding
	yank        key.Binding
	paste       key.Binding
	clear       key.Binding
	newBoard    key.Binding
	deleteBoard key.Binding
	logs        key.Binding
	help        key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prev:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev board")),
		next:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next board")),
		add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		remove:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear yank")),
		newBoard:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new board")),
		deleteBoard: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete board")),
		logs:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logs")),
		help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.add, k.remove, k.yank, k.paste, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.prev, k.next},
		{k.add, k.remove, k.yank, k.paste, k.clear},
		{k.newBoard, k.deleteBoard, k.logs},
		{k.help, k.quit},
	}
}

// formKeyMap holds the bindings shared by the form and confirmation views.
type formKeyMap struct {
	submit    key.Binding
	cancel    key.Binding
	nextField key.Binding
	prevField key.Binding
	yes       key.Binding
	no        key.Binding
	quit      key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		nextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
