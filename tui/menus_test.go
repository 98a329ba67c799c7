package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func pressFiles(m FilesModel, msgs ...tea.Msg) FilesModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(FilesModel)
	}
	return m
}

// TestFilesModelToggleAndConfirm tests toggling an item and confirming
func TestFilesModelToggleAndConfirm(t *testing.T) {
	m := NewFilesModel([]string{"a.mp4", "b.mkv"}, "")
	m = pressFiles(m, keyDown, keySpace)

	view := m.View()
	if !strings.Contains(view, "+ b.mkv") {
		t.Errorf("Expected b.mkv to be checked, got %q", view)
	}
	if !strings.Contains(view, "  a.mp4") {
		t.Errorf("Expected a.mp4 unchecked, got %q", view)
	}

	m = pressFiles(m, keyEnter)
	if !m.Confirmed() {
		t.Fatal("Expected enter to confirm")
	}
	if got := m.Selected(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Expected selection [1], got %v", got)
	}
}

// TestFilesModelSelectAll tests the select-all row at the end of the list
func TestFilesModelSelectAll(t *testing.T) {
	m := NewFilesModel([]string{"a.mp4", "b.mkv"}, "")
	m = pressFiles(m, keyUp, keySpace)

	view := m.View()
	for _, want := range []string{"+ a.mp4", "+ b.mkv", "+ (select all)"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view, got %q", want, view)
		}
	}

	// Unchecking one item clears select-all
	m = pressFiles(m, keyDown, keySpace)
	if strings.Contains(m.View(), "+ (select all)") {
		t.Error("Expected select-all to clear after unchecking an item")
	}
}

// TestFilesModelEmptyConfirmVsAbort tests the two ways of leaving the checklist
func TestFilesModelEmptyConfirmVsAbort(t *testing.T) {
	confirmed := pressFiles(NewFilesModel([]string{"a.mp4"}, ""), keyEnter)
	if !confirmed.Confirmed() || len(confirmed.Selected()) != 0 {
		t.Errorf("Expected empty confirmation, got confirmed=%v selected=%v", confirmed.Confirmed(), confirmed.Selected())
	}

	aborted := pressFiles(NewFilesModel([]string{"a.mp4"}, ""), keyQuit)
	if !aborted.Aborted() || aborted.Confirmed() {
		t.Error("Expected q to abort")
	}

	interrupted := pressFiles(NewFilesModel([]string{"a.mp4"}, ""), keyCtrlC)
	if !interrupted.Interrupted() {
		t.Error("Expected ctrl+c to interrupt")
	}
}

// TestFilesModelNotice tests the inline notice line
func TestFilesModelNotice(t *testing.T) {
	m := NewFilesModel(nil, "No media files found in /tmp/empty")
	view := m.View()
	if !strings.Contains(view, "(select all)") {
		t.Errorf("Expected select-all row, got %q", view)
	}
	if !strings.Contains(view, "No media files found in /tmp/empty") {
		t.Errorf("Expected notice, got %q", view)
	}
}

// TestFilesModelClipsToWindow tests width and height clipping
func TestFilesModelClipsToWindow(t *testing.T) {
	labels := []string{"a-very-long-file-name-that-does-not-fit.mp4", "b.mp4", "c.mp4", "d.mp4", "e.mp4"}
	m := pressFiles(NewFilesModel(labels, ""), tea.WindowSizeMsg{Width: 20, Height: 4})

	lines := strings.Split(m.View(), "\n")
	if len(lines) > 4 {
		t.Errorf("Expected at most 4 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 19 {
			t.Errorf("Expected line width <= 19, got %d for %q", w, l)
		}
	}
}

func TestFitScreenSingleRowAndColumn(t *testing.T) {
	body := []string{"a.mp4", "b.mp4", "c.mp4"}

	if got := fitScreen(body, "help", 80, 1); got != "help" {
		t.Errorf("Expected only the footer on a 1-row terminal, got %q", got)
	}
	got := fitScreen(body, "help", 1, 0)
	for _, l := range strings.Split(got, "\n") {
		if l != "" {
			t.Errorf("Expected empty lines on a 1-column terminal, got %q", l)
		}
	}
	if got := fitScreen(body, "help", 0, 0); got != "a.mp4\nb.mp4\nc.mp4\nhelp" {
		t.Errorf("Expected no clipping for unknown size, got %q", got)
	}
}

// TestOptionsModelNavigation tests wraparound and confirm
func TestOptionsModelNavigation(t *testing.T) {
	m := NewOptionsModel("Pick", []string{"one", "two", "three"}, []int{1, 2, 3}, "")

	next, _ := m.Update(keyUp)
	m = next.(OptionsModel[int])
	if !strings.Contains(m.View(), "> three") {
		t.Errorf("Expected cursor to wrap to the last option, got %q", m.View())
	}

	next, cmd := m.Update(keyEnter)
	m = next.(OptionsModel[int])
	v, ok := m.Choice()
	if !ok || v != 3 || cmd == nil {
		t.Errorf("Expected choice 3, got %d ok=%v", v, ok)
	}
}

// TestOptionsModelQuit tests that q aborts without a choice
func TestOptionsModelQuit(t *testing.T) {
	m := NewOptionsModel("Pick", []string{"base", "small"}, []string{"base", "small"}, "")
	next, _ := m.Update(keyQuit)
	m = next.(OptionsModel[string])
	if !m.Aborted() {
		t.Error("Expected q to abort")
	}
	if _, ok := m.Choice(); ok {
		t.Error("Expected no choice after abort")
	}
}

// TestNoticeModel tests acknowledgement and interrupt
func TestNoticeModel(t *testing.T) {
	m := NewNoticeModel("Transcription unavailable", "download failed\nstatus 503")
	if !strings.Contains(m.View(), "status 503") {
		t.Errorf("Expected message in view, got %q", m.View())
	}

	next, cmd := m.Update(keyEnter)
	if cmd == nil || next.(NoticeModel).Interrupted() {
		t.Error("Expected enter to dismiss the notice")
	}

	next, _ = m.Update(keyCtrlC)
	if !next.(NoticeModel).Interrupted() {
		t.Error("Expected ctrl+c to interrupt")
	}
}

func TestHelpLine(t *testing.T) {
	help := helpLine("enter", "proceed", "q", "quit")
	if !strings.Contains(help, "enter") || !strings.Contains(help, "quit") {
		t.Errorf("Expected help to contain keys and descriptions, got %q", help)
	}
	if helpLine() != "" {
		t.Error("Expected empty help for no keys")
	}
}
