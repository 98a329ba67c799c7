// Package proc launches external tools and reports how they finished.
//
// A launched Process never blocks its caller: the UI polls Exited on every
// spinner frame and only reads Result once the process is gone.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PollInterval is the cadence at which running processes are checked
const PollInterval = 100 * time.Millisecond

// DefaultStderrLimit bounds how much diagnostic output is kept per process
const DefaultStderrLimit = 4 * 1024

// ErrNotExited is returned by Result.Failure for a process that is still running
var ErrNotExited = errors.New("process has not exited")

// Command is one external tool invocation
type Command struct {
	Name string
	Args []string
	Dir  string
}

// String renders the command line for logs and status lines
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result is the terminal status of a process
type Result struct {
	Success  bool
	ExitCode int
	Stderr   string
	Err      error
}

// Failure describes why the process failed, or nil on success
func (r Result) Failure() error {
	if r.Success {
		return nil
	}
	detail := lastLines(r.Stderr, 3)
	switch {
	case r.Err != nil && detail != "":
		return fmt.Errorf("%w: %s", r.Err, detail)
	case r.Err != nil:
		return r.Err
	case detail != "":
		return fmt.Errorf("exit status %d: %s", r.ExitCode, detail)
	default:
		return fmt.Errorf("exit status %d", r.ExitCode)
	}
}

// Process is a running (or finished) external tool
type Process interface {
	// Exited reports whether the process has finished. It never blocks.
	Exited() bool
	// Result is only meaningful once Exited returns true.
	Result() Result
}

// Launcher starts processes
type Launcher interface {
	Launch(ctx context.Context, cmd Command) (Process, error)
}

// ExecLauncher starts real subprocesses with os/exec
type ExecLauncher struct {
	Logger      *zap.Logger
	StderrLimit int
}

// NewExecLauncher creates a launcher that logs to logger
func NewExecLauncher(logger *zap.Logger) *ExecLauncher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecLauncher{Logger: logger, StderrLimit: DefaultStderrLimit}
}

// Launch starts cmd and returns immediately.
// The process is killed when ctx is cancelled.
func (l *ExecLauncher) Launch(ctx context.Context, cmd Command) (Process, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = io.Discard
	stderr := newTailBuffer(l.StderrLimit)
	c.Stderr = stderr

	if err := c.Start(); err != nil {
		l.Logger.Warn("failed to start process", zap.String("cmd", cmd.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to start %s: %w", cmd.Name, err)
	}
	l.Logger.Debug("process started", zap.String("cmd", cmd.String()), zap.Int("pid", c.Process.Pid))

	p := &execProcess{done: make(chan struct{})}
	started := time.Now()
	go func() {
		err := c.Wait()
		p.result = resultFrom(err, stderr.String())
		l.Logger.Info("process exited",
			zap.String("cmd", cmd.Name),
			zap.Int("exit_code", p.result.ExitCode),
			zap.Duration("elapsed", time.Since(started)),
		)
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	done   chan struct{}
	result Result
}

func (p *execProcess) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *execProcess) Result() Result {
	select {
	case <-p.done:
		return p.result
	default:
		return Result{ExitCode: -1, Err: ErrNotExited}
	}
}

func resultFrom(err error, stderr string) Result {
	if err == nil {
		return Result{Success: true, Stderr: stderr}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Stderr: stderr}
	}
	return Result{ExitCode: -1, Stderr: stderr, Err: err}
}

// Wait polls p until it exits, calling tick between polls.
func Wait(p Process, interval time.Duration, tick func()) Result {
	for !p.Exited() {
		if tick != nil {
			tick()
		}
		time.Sleep(interval)
	}
	return p.Result()
}

// Run launches cmd and waits for it to finish.
// A launch failure is reported as a failed Result, not an error.
func Run(ctx context.Context, l Launcher, cmd Command) Result {
	p, err := l.Launch(ctx, cmd)
	if err != nil {
		return Result{ExitCode: -1, Err: err}
	}
	return Wait(p, PollInterval, nil)
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
