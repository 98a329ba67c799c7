package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"mediapost/action"
	"mediapost/app"
	"mediapost/media"
	"mediapost/proc"
	"mediapost/transcribe"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"
)

// ProgramRunner runs one screen to completion and returns its final model
type ProgramRunner func(ctx context.Context, m tea.Model) (tea.Model, error)

// Screens shows every interactive screen of a session as its own Bubble Tea
// program on the alternate screen.
type Screens struct {
	Launcher proc.Launcher
	Logger   *zap.Logger

	// Run replaces the real terminal program, mainly for tests
	Run ProgramRunner
}

var (
	_ app.Screens         = (*Screens)(nil)
	_ transcribe.Prompter = (*Screens)(nil)
)

// NewScreens creates screens launching external tools through launcher
func NewScreens(launcher proc.Launcher, logger *zap.Logger) *Screens {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screens{Launcher: launcher, Logger: logger}
}

// RunProgram runs m full screen, bound to ctx
func RunProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrInterrupted) {
			return final, app.ErrInterrupted
		}
		return final, err
	}
	return final, nil
}

func (s *Screens) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	if s.Run != nil {
		return s.Run(ctx, m)
	}
	return RunProgram(ctx, m)
}

func (s *Screens) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// SelectFiles shows the media checklist. An empty slice means the user
// confirmed without checking anything.
func (s *Screens) SelectFiles(ctx context.Context, items []media.Item, notice string) ([]media.Item, error) {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}

	final, err := s.run(ctx, NewFilesModel(labels, notice))
	if err != nil {
		return nil, err
	}
	m := final.(FilesModel)
	switch {
	case m.Interrupted():
		return nil, app.ErrInterrupted
	case m.Aborted():
		return nil, app.ErrAborted
	}

	selected := []media.Item{}
	for _, i := range m.Selected() {
		selected = append(selected, items[i])
	}
	return selected, nil
}

// SelectAction shows the action menu for the chosen files
func (s *Screens) SelectAction(ctx context.Context, files []media.Item, notice string) (action.Action, error) {
	title := fmt.Sprintf("Choose an action for %d file(s)", len(files))
	model := NewOptionsModel(title, action.Labels(action.Options), action.Actions(action.Options), notice)

	final, err := s.run(ctx, model)
	if err != nil {
		return 0, err
	}
	return optionResult(final.(OptionsModel[action.Action]))
}

func optionResult[T any](m OptionsModel[T]) (T, error) {
	var zero T
	switch {
	case m.Interrupted():
		return zero, app.ErrInterrupted
	case m.Aborted():
		return zero, app.ErrAborted
	}
	v, ok := m.Choice()
	if !ok {
		return zero, app.ErrAborted
	}
	return v, nil
}

// ChooseModel shows the model sub-menu over the discovered identifiers
func (s *Screens) ChooseModel(ctx context.Context, ids []string) (string, bool, error) {
	final, err := s.run(ctx, NewOptionsModel("Select a Whisper model", ids, ids, ""))
	if err != nil {
		return "", false, err
	}
	id, err := optionResult(final.(OptionsModel[string]))
	if errors.Is(err, app.ErrAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// RunJobs runs the batch screen until the user dismisses the summary
func (s *Screens) RunJobs(ctx context.Context, title string, jobs []action.Job) error {
	final, err := s.run(ctx, NewBatchModel(ctx, s.Launcher, title, jobs))
	if err != nil {
		return err
	}
	m := final.(BatchModel)
	ok, failed := action.Summary(m.Outcomes())
	s.log().Info("batch finished", zap.String("action", title), zap.Int("succeeded", ok), zap.Int("failed", failed))
	if m.Interrupted() {
		return app.ErrInterrupted
	}
	return nil
}

// TranscribeFiles transcribes files one by one with the loaded model
func (s *Screens) TranscribeFiles(ctx context.Context, t transcribe.Transcriber, files []media.Item) error {
	if len(files) == 0 {
		return nil
	}
	final, err := s.run(ctx, NewTranscribeModel(ctx, t, files))
	if err != nil {
		return err
	}
	m := final.(TranscribeModel)
	s.log().Info("transcription finished", zap.Int("files", len(files)), zap.Int("failed", m.Failed()))
	if m.Interrupted() {
		return app.ErrInterrupted
	}
	return nil
}

// Notice shows a message that needs a key press
func (s *Screens) Notice(ctx context.Context, title, message string) error {
	final, err := s.run(ctx, NewNoticeModel(title, message))
	if err != nil {
		return err
	}
	if final.(NoticeModel).Interrupted() {
		return app.ErrInterrupted
	}
	return nil
}

// PromptURL asks for the remote video link. Esc or an empty submission
// goes back with app.ErrAborted; Ctrl+C ends the session.
func (s *Screens) PromptURL(ctx context.Context) (string, error) {
	var link string
	input := huh.NewInput().
		Title("Enter the video URL").
		Description("The audio track is downloaded as MP3 into the working directory. Leave empty or press esc to go back.").
		Placeholder("https://").
		Validate(validateOptionalURL).
		Value(&link)

	var escaped bool
	err := huh.NewForm(huh.NewGroup(input)).
		WithTheme(huh.ThemeCatppuccin()).
		WithProgramOptions(tea.WithFilter(escapeFilter(&escaped))).
		RunWithContext(ctx)
	return urlPromptResult(ctx, link, escaped, err)
}

// escapeFilter turns esc into the form's quit key and records that it was
// pressed, so an abort can be told apart from Ctrl+C.
func escapeFilter(escaped *bool) func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			*escaped = true
			return tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		return msg
	}
}

func urlPromptResult(ctx context.Context, link string, escaped bool, err error) (string, error) {
	switch {
	case ctx.Err() != nil:
		return "", app.ErrInterrupted
	case errors.Is(err, huh.ErrUserAborted):
		if escaped {
			return "", app.ErrAborted
		}
		return "", app.ErrInterrupted
	case err != nil:
		return "", err
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return "", app.ErrAborted
	}
	return link, nil
}

func validateOptionalURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return ValidateURL(s)
}

// ValidateURL accepts absolute http and https links
func ValidateURL(s string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return errors.New("enter a full link, e.g. https://example.com/watch?v=...")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}

// Progress returns a transcribe.Progress that shows a spinner while the
// task runs in the background. The task has always finished by the time
// the returned function returns, even when ctx is cancelled.
func (s *Screens) Progress(ctx context.Context) transcribe.Progress {
	return func(title string, task func() error) error {
		return runJoined(ctx, task, func(wait func(context.Context) error) error {
			return spinner.New().
				Type(spinner.Line).
				Title(title).
				Context(ctx).
				ActionWithErr(wait).
				Run()
		})
	}
}

// runJoined runs task in its own goroutine while show displays progress.
// show gets a wait func that blocks until the task is done or its context
// ends.
func runJoined(ctx context.Context, task func() error, show func(wait func(context.Context) error) error) error {
	if ctx.Err() != nil {
		return app.ErrInterrupted
	}

	var taskErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		taskErr = task()
	}()

	showErr := show(func(c context.Context) error {
		select {
		case <-done:
			return nil
		case <-c.Done():
			return c.Err()
		}
	})
	<-done

	if ctx.Err() != nil {
		return app.ErrInterrupted
	}
	if showErr != nil {
		return showErr
	}
	return taskErr
}
