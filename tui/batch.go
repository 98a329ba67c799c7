package tui

import (
	"context"
	"fmt"
	"time"

	"mediapost/action"
	"mediapost/proc"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// BatchModel runs a list of jobs one after another, polling the running
// process and animating its status line until it exits.
type BatchModel struct {
	title    string
	jobs     []action.Job
	launcher proc.Launcher

	index    int
	current  proc.Process
	outcomes []action.Outcome

	spinner   spinner.Model
	startTime time.Time
	done      bool
	exit      exit
	size      windowSize

	ctx    context.Context
	cancel context.CancelFunc
}

type pollMsg struct{}

// NewBatchModel creates a batch runner. Processes are bound to ctx and are
// killed when it is cancelled or the user interrupts.
func NewBatchModel(ctx context.Context, launcher proc.Launcher, title string, jobs []action.Job) BatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(ctx)

	return BatchModel{
		title:     title,
		jobs:      jobs,
		launcher:  launcher,
		spinner:   sp,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func poll() tea.Cmd {
	return tea.Tick(proc.PollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m BatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, poll())
}

func (m BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		// Jobs are not cancellable from the keyboard; once the batch is
		// done any key returns to file selection.
		if m.done {
			m.exit = exitConfirmed
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollMsg:
		m = m.advance()
		if m.done {
			return m, nil
		}
		return m, poll()
	}
	return m, nil
}

// advance does one poll step: launch the next job when idle, or collect
// the running one if it has exited.
func (m BatchModel) advance() BatchModel {
	if m.current != nil {
		if !m.current.Exited() {
			return m
		}
		res := m.current.Result()
		m = m.record(res.Failure())
		m.current = nil
		return m
	}

	if m.index >= len(m.jobs) {
		m.done = true
		return m
	}

	job := m.jobs[m.index]
	if job.Skip != nil {
		return m.record(job.Skip)
	}
	p, err := m.launcher.Launch(m.ctx, job.Command)
	if err != nil {
		return m.record(err)
	}
	m.current = p
	return m
}

func (m BatchModel) record(err error) BatchModel {
	m.outcomes = append(m.outcomes, action.Outcome{Job: m.jobs[m.index], Err: err})
	m.index++
	return m
}

func (m BatchModel) View() string {
	if m.exit != exitNone {
		return ""
	}
	body := []string{TitleStyle.Render(m.title), ""}

	for _, o := range m.outcomes {
		if o.Succeeded() {
			line := SuccessStyle.Render("done ") + " " + o.Job.Title()
			if o.Job.Output != "" {
				line += MutedStyle.Render(" -> " + o.Job.Output)
			}
			body = append(body, line)
		} else {
			body = append(body, ErrorStyle.Render("fail ")+" "+o.Job.Title()+": "+o.Err.Error())
		}
	}
	if m.index < len(m.jobs) {
		body = append(body, m.spinner.View()+"     "+BodyStyle.Render(m.jobs[m.index].Title()))
		for _, j := range m.jobs[m.index+1:] {
			body = append(body, MutedStyle.Render("      "+j.Title()))
		}
	}

	var help string
	if m.done {
		ok, failed := action.Summary(m.outcomes)
		body = append(body, "", fmt.Sprintf("%d succeeded, %d failed in %s", ok, failed, formatDuration(time.Since(m.startTime))))
		help = helpLine("any key", "continue")
	} else {
		help = helpLine("ctrl+c", "interrupt")
	}
	return fitScreen(body, help, m.size.width, m.size.height)
}

// Outcomes returns the per-job results recorded so far
func (m BatchModel) Outcomes() []action.Outcome { return m.outcomes }

func (m BatchModel) Done() bool        { return m.done }
func (m BatchModel) Interrupted() bool { return m.exit == exitInterrupted }

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
