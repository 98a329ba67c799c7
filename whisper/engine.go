package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mediapost/media"
	"mediapost/proc"

	"go.uber.org/zap"
)

// ggml files start with the little-endian uint32 0x67676d6c
var ggmlMagic = []byte("lmgg")

// formats whisper-cli reads without conversion
var nativeFormats = map[string]bool{".wav": true, ".mp3": true, ".flac": true, ".ogg": true}

// Engine runs whisper.cpp's command line tool
type Engine struct {
	Executable string
	Tools      media.Tools
	Launcher   proc.Launcher
	Logger     *zap.Logger
	TempDir    string
	LookPath   func(string) (string, error)
}

// NewEngine creates an engine for the given whisper-cli executable
func NewEngine(executable string, tools media.Tools, launcher proc.Launcher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		Executable: executable,
		Tools:      tools,
		Launcher:   launcher,
		Logger:     logger,
		LookPath:   exec.LookPath,
	}
}

// Loaded is a resolved model ready to transcribe files
type Loaded struct {
	ID     string
	Path   string
	engine *Engine
	exe    string
}

// Load resolves model id in dir and checks it is a ggml file.
func (e *Engine) Load(ctx context.Context, dir, id string) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := ModelPath(dir, id)
	if err != nil {
		return nil, err
	}
	if err := checkMagic(path); err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}

	lookPath := e.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	exe, err := lookPath(e.Executable)
	if err != nil {
		return nil, fmt.Errorf("%s not found. Please install whisper.cpp first: %w", e.Executable, err)
	}

	e.Logger.Info("model loaded", zap.String("model", id), zap.String("path", path), zap.String("engine", exe))
	return &Loaded{ID: id, Path: path, engine: e, exe: exe}, nil
}

func checkMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, len(ggmlMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if !bytes.Equal(header, ggmlMagic) {
		return errors.New("not a ggml model file")
	}
	return nil
}

// Transcribe runs inference on audioPath and returns the transcript text
func (l *Loaded) Transcribe(ctx context.Context, audioPath string) (string, error) {
	e := l.engine
	tmpDir := e.TempDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	stamp := fmt.Sprintf("mediapost-%d", time.Now().UnixNano())

	input := audioPath
	if !nativeFormats[strings.ToLower(filepath.Ext(audioPath))] {
		wav := filepath.Join(tmpDir, stamp+".wav")
		defer os.Remove(wav)
		res := proc.Run(ctx, e.Launcher, e.Tools.WAVCommand(audioPath, wav))
		if err := res.Failure(); err != nil {
			return "", fmt.Errorf("convert to wav: %w", err)
		}
		input = wav
	}

	outBase := filepath.Join(tmpDir, stamp)
	txtOut := outBase + ".txt"
	defer os.Remove(txtOut)

	args := []string{"-m", l.Path, "-f", input, "-nt", "-otxt", "-of", outBase}
	e.Logger.Debug("running whisper", zap.String("engine", l.exe), zap.Strings("args", args))
	res := proc.Run(ctx, e.Launcher, proc.Command{Name: l.exe, Args: args})
	if err := res.Failure(); err != nil {
		return "", fmt.Errorf("whisper transcribe failed: %w", err)
	}

	content, err := os.ReadFile(txtOut)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}
