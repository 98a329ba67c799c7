package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// NoticeModel shows a message until any key is pressed
type NoticeModel struct {
	title   string
	message string
	exit    exit
	size    windowSize
}

func NewNoticeModel(title, message string) NoticeModel {
	return NoticeModel{title: title, message: message}
}

func (m NoticeModel) Init() tea.Cmd { return nil }

func (m NoticeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size.update(msg)
	case tea.KeyMsg:
		m.exit = exitConfirmed
		if key.Matches(msg, keys.Interrupt) {
			m.exit = exitInterrupted
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m NoticeModel) View() string {
	if m.exit != exitNone {
		return ""
	}
	body := []string{ErrorStyle.Render(m.title), ""}
	body = append(body, strings.Split(m.message, "\n")...)
	return fitScreen(body, helpLine("any key", "continue"), m.size.width, m.size.height)
}

func (m NoticeModel) Interrupted() bool { return m.exit == exitInterrupted }
