package whisper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mediapost/download"

	"go.uber.org/zap"
)

// DefaultModel is downloaded when no model is present in the working directory
const DefaultModel = "base"

// Model is one downloadable whisper.cpp ggml model
type Model struct {
	ID       string
	FileName string
	URL      string
	SHA256   string
}

// catalog lists the known model sizes, smallest first
var catalog = []Model{
	{
		ID:       "tiny",
		FileName: "ggml-tiny.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
		SHA256:   "be07e048e1e599ad46341c8d2a135645097a538221678b7acdd1b1919c6e1b21",
	},
	{
		ID:       "base",
		FileName: "ggml-base.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		SHA256:   "60ed5bc3dd14eea856493d334349b405782ddcaf0028d4b5df4088345fba2efe",
	},
	{
		ID:       "small",
		FileName: "ggml-small.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		SHA256:   "1be3a9b2063867b937e64e2ec7483364a79917e157fa98c5d94b5c1fffea987b",
	},
	{
		ID:       "medium",
		FileName: "ggml-medium.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
		SHA256:   "6c14d5adee5f86394037b4e4e8b59f1673b6cee10e3cf0b11bbdbee79c156208",
	},
	{
		ID:       "large",
		FileName: "ggml-large-v3.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
		SHA256:   "64d182b440b98d5203c4f9bd541544d84c605196c4f7b845dfa11fb23594d1e2",
	},
}

// ErrUnknownModel is returned for identifiers outside the catalog
var ErrUnknownModel = errors.New("unknown model")

// Models returns a copy of the catalog
func Models() []Model {
	return append([]Model(nil), catalog...)
}

// IDs returns the catalog identifiers in catalog order
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, m := range catalog {
		ids[i] = m.ID
	}
	return ids
}

// Lookup finds a catalog entry by identifier
func Lookup(id string) (Model, error) {
	for _, m := range catalog {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w %q", ErrUnknownModel, id)
}

// Discover returns the identifiers that exist as entries of dir,
// matched by exact name, in catalog order.
func Discover(dir string) ([]string, error) {
	var found []string
	for _, m := range catalog {
		_, err := os.Stat(filepath.Join(dir, m.ID))
		if err == nil {
			found = append(found, m.ID)
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat model %s: %w", m.ID, err)
		}
	}
	return found, nil
}

// ModelPath resolves the ggml file for id inside dir. The entry named id
// is either the model file itself or a directory holding the catalog file.
func ModelPath(dir, id string) (string, error) {
	m, err := Lookup(id)
	if err != nil {
		return "", err
	}
	entry := filepath.Join(dir, m.ID)
	info, err := os.Stat(entry)
	if err != nil {
		return "", fmt.Errorf("model %s not found: %w", id, err)
	}
	if info.IsDir() {
		return filepath.Join(entry, m.FileName), nil
	}
	return entry, nil
}

// DownloadOptions configures Download
type DownloadOptions struct {
	Logger   *zap.Logger
	Progress *os.File
}

// Download fetches model id into dir as a file named id
func Download(ctx context.Context, dir, id string, opts DownloadOptions) error {
	m, err := Lookup(id)
	if err != nil {
		return err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	destination := filepath.Join(dir, m.ID)
	opts.Logger.Info("downloading model", zap.String("model", m.ID), zap.String("destination", destination))
	if err := download.File(ctx, download.Options{
		URL:            m.URL,
		Destination:    destination,
		ExpectedSHA256: m.SHA256,
		Logger:         opts.Logger,
		Progress:       opts.Progress,
	}); err != nil {
		return fmt.Errorf("download model %q: %w", m.ID, err)
	}
	return nil
}
