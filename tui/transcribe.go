package tui

import (
	"context"
	"fmt"

	"mediapost/media"
	"mediapost/transcribe"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// TranscribeStep represents where the transcription screen is for the
// current file
type TranscribeStep int

const (
	TStepTranscribing TranscribeStep = iota
	TStepResult
	TStepComplete
)

// TranscribeModel transcribes the selected files one at a time with an
// already loaded model. Each file's result waits for a key press.
type TranscribeModel struct {
	step  TranscribeStep
	model transcribe.Transcriber
	files []media.Item

	index   int
	output  string
	lastErr error
	failed  int

	spinner spinner.Model
	exit    exit
	size    windowSize

	ctx    context.Context
	cancel context.CancelFunc
}

type transcribeResultMsg struct {
	index  int
	output string
	err    error
}

// NewTranscribeModel creates the per-file transcription screen
func NewTranscribeModel(ctx context.Context, model transcribe.Transcriber, files []media.Item) TranscribeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(ctx)

	return TranscribeModel{
		step:    TStepTranscribing,
		model:   model,
		files:   files,
		spinner: sp,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (m TranscribeModel) Init() tea.Cmd {
	if len(m.files) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.startFile())
}

// startFile runs inference for the current file off the UI goroutine
func (m TranscribeModel) startFile() tea.Cmd {
	ctx, model, index, path := m.ctx, m.model, m.index, m.files[m.index].Path
	return func() tea.Msg {
		out, err := transcribe.File(ctx, model, path)
		return transcribeResultMsg{index: index, output: out, err: err}
	}
}

func (m TranscribeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size.update(msg)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Interrupt) {
			m.exit = exitInterrupted
			m.cancel()
			return m, tea.Quit
		}
		if m.step != TStepResult {
			return m, nil
		}
		m.index++
		if m.index >= len(m.files) {
			m.step = TStepComplete
			m.exit = exitConfirmed
			m.cancel()
			return m, tea.Quit
		}
		m.step = TStepTranscribing
		m.output, m.lastErr = "", nil
		return m, tea.Batch(m.spinner.Tick, m.startFile())

	case spinner.TickMsg:
		if m.step != TStepTranscribing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case transcribeResultMsg:
		if msg.index != m.index {
			return m, nil
		}
		m.step = TStepResult
		m.output = msg.output
		m.lastErr = msg.err
		if msg.err != nil {
			m.failed++
		}
		return m, nil
	}
	return m, nil
}

func (m TranscribeModel) View() string {
	if m.exit != exitNone || m.index >= len(m.files) {
		return ""
	}
	label := m.files[m.index].Label
	progress := MutedStyle.Render(fmt.Sprintf("[%d/%d]", m.index+1, len(m.files)))
	body := []string{TitleStyle.Render("Transcribe audio"), ""}

	var help string
	switch m.step {
	case TStepTranscribing:
		body = append(body, m.spinner.View()+" "+progress+" "+BodyStyle.Render("Transcribing "+label+"..."))
		help = helpLine("ctrl+c", "interrupt")
	case TStepResult:
		if m.lastErr != nil {
			body = append(body, progress+" "+ErrorStyle.Render("Error: ")+label+": "+m.lastErr.Error())
		} else {
			body = append(body, progress+" "+SuccessStyle.Render("Transcript written to ")+m.output)
		}
		help = helpLine("any key", "continue")
	}
	return fitScreen(body, help, m.size.width, m.size.height)
}

// Step returns the current step
func (m TranscribeModel) Step() TranscribeStep { return m.step }

// Failed returns how many files could not be transcribed
func (m TranscribeModel) Failed() int { return m.failed }

func (m TranscribeModel) IsComplete() bool  { return m.step == TStepComplete }
func (m TranscribeModel) Interrupted() bool { return m.exit == exitInterrupted }
