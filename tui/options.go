package tui

import (
	"mediapost/menu"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// OptionsModel is a single-choice menu. It backs both the action menu and
// the model sub-menu.
type OptionsModel[T any] struct {
	title  string
	nav    *menu.Navigator[T]
	notice string
	exit   exit
	size   windowSize
}

// NewOptionsModel creates a menu titled title over label/value pairs
func NewOptionsModel[T any](title string, labels []string, values []T, notice string) OptionsModel[T] {
	return OptionsModel[T]{
		title:  title,
		nav:    menu.NewNavigator(labels, values),
		notice: notice,
	}
}

func (m OptionsModel[T]) Init() tea.Cmd { return nil }

func (m OptionsModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size.update(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Interrupt):
			m.exit = exitInterrupted
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			m.exit = exitAborted
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.nav.MoveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.nav.MoveCursor(1)
		case key.Matches(msg, keys.Confirm):
			if _, ok := m.nav.Confirm(); ok {
				m.exit = exitConfirmed
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m OptionsModel[T]) View() string {
	if m.exit != exitNone {
		return ""
	}
	body := []string{TitleStyle.Render(m.title), ""}
	for i, label := range m.nav.Rows() {
		line := "  " + label
		if i == m.nav.Cursor() {
			line = HighlightStyle.Render("> " + label)
		}
		body = append(body, line)
	}
	if m.notice != "" {
		body = append(body, "", ErrorStyle.Render(m.notice))
	}

	help := helpLine("up/down", "navigate", "enter", "select", "q", "quit")
	return fitScreen(body, help, m.size.width, m.size.height)
}

// Choice returns the confirmed value; ok is false unless the menu was confirmed
func (m OptionsModel[T]) Choice() (T, bool) {
	if m.exit != exitConfirmed {
		var zero T
		return zero, false
	}
	return m.nav.Confirm()
}

func (m OptionsModel[T]) Aborted() bool     { return m.exit == exitAborted }
func (m OptionsModel[T]) Interrupted() bool { return m.exit == exitInterrupted }
