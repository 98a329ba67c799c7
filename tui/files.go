package tui

import (
	"mediapost/menu"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// FilesModel is the multi-select checklist of media files
type FilesModel struct {
	list   *menu.Checklist
	notice string
	exit   exit
	size   windowSize
}

// NewFilesModel creates the checklist for labels. notice, if set, is shown
// above the help line.
func NewFilesModel(labels []string, notice string) FilesModel {
	return FilesModel{list: menu.NewChecklist(labels), notice: notice}
}

func (m FilesModel) Init() tea.Cmd { return nil }

func (m FilesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			m.list.MoveCursor(-1)
		case key.Matches(msg, keys.Down):
			m.list.MoveCursor(1)
		case key.Matches(msg, keys.Toggle):
			m.list.ToggleCurrent()
			m.notice = ""
		case key.Matches(msg, keys.Confirm):
			m.exit = exitConfirmed
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FilesModel) View() string {
	if m.exit != exitNone {
		return ""
	}
	rows := m.list.Rows()
	flags := m.list.Flags()

	body := make([]string, 0, len(rows)+1)
	for i, label := range rows {
		line := "  " + label
		if flags[i] {
			line = "+ " + label
		}
		if i == m.list.Cursor() {
			line = HighlightStyle.Render(line)
		}
		body = append(body, line)
	}
	if m.notice != "" {
		body = append(body, WarningStyle.Render(m.notice))
	}

	help := helpLine("up/down", "navigate", "space", "toggle selection", "enter", "proceed", "q", "quit")
	return fitScreen(body, help, m.size.width, m.size.height)
}

// Selected returns the confirmed file indices; empty when nothing was checked
func (m FilesModel) Selected() []int { return m.list.Confirm() }

func (m FilesModel) Confirmed() bool   { return m.exit == exitConfirmed }
func (m FilesModel) Aborted() bool     { return m.exit == exitAborted }
func (m FilesModel) Interrupted() bool { return m.exit == exitInterrupted }
