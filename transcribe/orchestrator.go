// Package transcribe decides which speech model to use, loads it once and
// writes one transcript per selected file.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mediapost/media"
	"mediapost/whisper"

	"go.uber.org/zap"
)

// ErrAborted is returned when the user cancels the model sub-menu
var ErrAborted = errors.New("transcription aborted")

// ErrModelUnavailable wraps download and load failures
var ErrModelUnavailable = errors.New("speech model unavailable")

// Transcriber turns one media file into text
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Backend finds, downloads and loads models
type Backend interface {
	Discover(dir string) ([]string, error)
	Download(ctx context.Context, dir, id string) error
	Load(ctx context.Context, dir, id string) (Transcriber, error)
}

// Prompter asks the user to pick one of the discovered models.
// ok is false when the user cancelled.
type Prompter interface {
	ChooseModel(ctx context.Context, ids []string) (id string, ok bool, err error)
}

// Progress runs task while an indicator animates under title
type Progress func(title string, task func() error) error

// Orchestrator resolves and loads the model for one transcription session
type Orchestrator struct {
	Dir      string
	Default  string
	Backend  Backend
	Prompter Prompter
	Progress Progress
	Logger   *zap.Logger
}

func (o *Orchestrator) log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Orchestrator) busy(title string, task func() error) error {
	if o.Progress == nil {
		return task()
	}
	return o.Progress(title, task)
}

// Resolve picks a model (downloading the default when none is present,
// asking the user otherwise) and loads it.
func (o *Orchestrator) Resolve(ctx context.Context) (Transcriber, error) {
	found, err := o.Backend.Discover(o.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	var id string
	if len(found) == 0 {
		id = o.Default
		if id == "" {
			id = whisper.DefaultModel
		}
		o.log().Info("no local model, downloading default", zap.String("model", id))
		err := o.busy(fmt.Sprintf("Downloading %s model...", id), func() error {
			return o.Backend.Download(ctx, o.Dir, id)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
	} else {
		chosen, ok, err := o.Prompter.ChooseModel(ctx, found)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
		id = chosen
	}

	var model Transcriber
	err = o.busy(fmt.Sprintf("Loading %s model...", id), func() error {
		var loadErr error
		model, loadErr = o.Backend.Load(ctx, o.Dir, id)
		return loadErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	return model, nil
}

// File transcribes path with t and writes <base>_transcript.txt next to it,
// returning the transcript path.
func File(ctx context.Context, t Transcriber, path string) (string, error) {
	text, err := t.Transcribe(ctx, path)
	if err != nil {
		return "", err
	}
	out := media.TranscriptOutputPath(path)
	if err := os.WriteFile(out, []byte(text+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	return out, nil
}

// WhisperBackend serves models from the whisper catalog
type WhisperBackend struct {
	Engine *whisper.Engine
	Logger *zap.Logger
}

func (b WhisperBackend) Discover(dir string) ([]string, error) {
	return whisper.Discover(dir)
}

func (b WhisperBackend) Download(ctx context.Context, dir, id string) error {
	return whisper.Download(ctx, dir, id, whisper.DownloadOptions{Logger: b.Logger})
}

func (b WhisperBackend) Load(ctx context.Context, dir, id string) (Transcriber, error) {
	loaded, err := b.Engine.Load(ctx, dir, id)
	if err != nil {
		return nil, err
	}
	return loaded, nil
}
