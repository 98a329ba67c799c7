package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Confirm   key.Binding
	Quit      key.Binding
	Interrupt key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "move")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "move")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "proceed")),
	Quit:      key.NewBinding(key.WithKeys("q", "Q"), key.WithHelp("q", "quit")),
	Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
}

// exit records how a screen was left
type exit int

const (
	exitNone exit = iota
	exitConfirmed
	exitAborted
	exitInterrupted
)

// windowSize keeps the latest terminal dimensions
type windowSize struct {
	width  int
	height int
}

func (w *windowSize) update(msg tea.WindowSizeMsg) {
	w.width = msg.Width
	w.height = msg.Height
}
