// Package app sequences the interactive session: pick files, pick an
// action, run it, and start over with a fresh directory listing.
package app

import (
	"context"
	"errors"
	"fmt"

	"mediapost/action"
	"mediapost/media"
	"mediapost/transcribe"

	"go.uber.org/zap"
)

var (
	// ErrAborted is returned by a screen when the user quits it with q
	ErrAborted = errors.New("aborted")
	// ErrInterrupted is returned by a screen on Ctrl+C or a termination signal
	ErrInterrupted = errors.New("interrupted")
)

// State is a dispatcher state
type State int

const (
	SelectingFiles State = iota
	SelectingAction
	Running
	Exited
)

func (s State) String() string {
	switch s {
	case SelectingFiles:
		return "selecting-files"
	case SelectingAction:
		return "selecting-action"
	case Running:
		return "running"
	case Exited:
		return "exited"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Screens is the user-facing side of the session. Every method blocks
// until its screen is dismissed.
type Screens interface {
	SelectFiles(ctx context.Context, items []media.Item, notice string) ([]media.Item, error)
	SelectAction(ctx context.Context, files []media.Item, notice string) (action.Action, error)
	RunJobs(ctx context.Context, title string, jobs []action.Job) error
	PromptURL(ctx context.Context) (string, error)
	TranscribeFiles(ctx context.Context, t transcribe.Transcriber, files []media.Item) error
	Notice(ctx context.Context, title, message string) error
}

// ModelResolver provides the loaded speech model for a transcription run
type ModelResolver interface {
	Resolve(ctx context.Context) (transcribe.Transcriber, error)
}

// Lister scans a directory for media files
type Lister func(dir string) ([]media.Item, error)

// Dispatcher is the top-level state machine
type Dispatcher struct {
	Dir     string
	Tools   media.Tools
	List    Lister
	Screens Screens
	Models  ModelResolver
	Logger  *zap.Logger

	// OnTransition, if set, observes every state change
	OnTransition func(from, to State)
}

func (d *Dispatcher) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

func (d *Dispatcher) move(from *State, to State) {
	if d.OnTransition != nil {
		d.OnTransition(*from, to)
	}
	d.log().Debug("state transition", zap.Stringer("from", *from), zap.Stringer("to", to))
	*from = to
}

// Run drives the session until the user quits. Quitting from a menu
// returns nil; an interrupt returns ErrInterrupted.
func (d *Dispatcher) Run(ctx context.Context) error {
	list := d.List
	if list == nil {
		list = media.ListFiles
	}

	state := SelectingFiles
	var (
		files  []media.Item
		chosen action.Action
		notice string
	)

	for {
		switch state {
		case SelectingFiles:
			items, err := list(d.Dir)
			if err != nil {
				return fmt.Errorf("list media files: %w", err)
			}
			if len(items) == 0 && notice == "" {
				notice = "No media files found in " + d.Dir
			}

			selected, err := d.Screens.SelectFiles(ctx, items, notice)
			notice = ""
			if errors.Is(err, ErrAborted) {
				d.move(&state, Exited)
				continue
			}
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				notice = "No files selected"
				d.move(&state, SelectingFiles)
				continue
			}
			files = selected
			d.move(&state, SelectingAction)

		case SelectingAction:
			a, err := d.Screens.SelectAction(ctx, files, notice)
			notice = ""
			if errors.Is(err, ErrAborted) {
				d.move(&state, Exited)
				continue
			}
			if err != nil {
				return err
			}
			chosen = a
			d.move(&state, Running)

		case Running:
			d.log().Info("running action", zap.Stringer("action", chosen), zap.Int("files", len(files)))
			next, err := d.run(ctx, chosen, files)
			if err != nil {
				return err
			}
			d.move(&state, next)

		case Exited:
			return nil
		}
	}
}

func (d *Dispatcher) run(ctx context.Context, a action.Action, files []media.Item) (State, error) {
	switch a {
	case action.ExtractAudio, action.Reencode:
		jobs, err := action.Plan(a, d.Tools, files)
		if err != nil {
			return SelectingFiles, err
		}
		return SelectingFiles, d.Screens.RunJobs(ctx, a.String(), jobs)

	case action.RemoteExtract:
		url, err := d.Screens.PromptURL(ctx)
		if errors.Is(err, ErrAborted) {
			return SelectingFiles, nil
		}
		if err != nil {
			return SelectingFiles, err
		}
		return SelectingFiles, d.Screens.RunJobs(ctx, a.String(), []action.Job{action.RemoteJob(d.Tools, url, d.Dir)})

	case action.Transcribe:
		model, err := d.Models.Resolve(ctx)
		switch {
		case errors.Is(err, transcribe.ErrAborted):
			return SelectingFiles, nil
		case errors.Is(err, ErrInterrupted):
			return Exited, err
		case err != nil:
			d.log().Warn("model resolution failed", zap.Error(err))
			if nerr := d.Screens.Notice(ctx, "Transcription unavailable", err.Error()); nerr != nil {
				return Exited, nerr
			}
			return SelectingAction, nil
		}
		return SelectingFiles, d.Screens.TranscribeFiles(ctx, model, files)
	}
	return SelectingFiles, fmt.Errorf("unknown action %d", int(a))
}
