package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediapost/app"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := runCLI(t, "--version")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}
	if !strings.Contains(out, "mediapost "+version) {
		t.Errorf("Expected version output, got %q", out)
	}
	if !strings.Contains(out, "os/arch:") {
		t.Errorf("Expected build details, got %q", out)
	}
}

func TestModelsList(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "small"), []byte("lmgg"), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "models", "list", "--dir", dir)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, errOut)
	}

	lines := strings.Split(out, "\n")
	var small, medium string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "small "):
			small = l
		case strings.HasPrefix(l, "medium "):
			medium = l
		}
	}
	if !strings.Contains(small, "present") {
		t.Errorf("Expected small to be present, got %q", small)
	}
	if !strings.Contains(medium, "missing") {
		t.Errorf("Expected medium to be missing, got %q", medium)
	}
	if !strings.Contains(out, "base*") {
		t.Errorf("Expected default model to be marked, got %q", out)
	}
}

func TestModelsFetchUnknown(t *testing.T) {
	code, _, errOut := runCLI(t, "models", "fetch", "huge", "--dir", t.TempDir())
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "unknown model") {
		t.Errorf("Expected unknown model error, got %q", errOut)
	}
}

func TestModelsFetchTooManyArgs(t *testing.T) {
	code, _, errOut := runCLI(t, "models", "fetch", "base", "small", "--dir", t.TempDir())
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "accepts at most 1 arg") {
		t.Errorf("Expected argument error, got %q", errOut)
	}
}

func TestDirMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := runCLI(t, "models", "list", "--dir", file)
	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "is not a directory") {
		t.Errorf("Expected directory error, got %q", errOut)
	}
}

func TestLogFileFlag(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "mediapost.log")

	code, _, errOut := runCLI(t, "models", "list", "--dir", dir, "--log-file", logPath, "--json")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", code, errOut)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("Expected log file to be created: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"interrupted", app.ErrInterrupted, 130},
		{"wrapped interrupt", fmt.Errorf("batch: %w", app.ErrInterrupted), 130},
		{"failure", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: exitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
