package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"mediapost/app"
	"mediapost/config"
	"mediapost/logging"
	"mediapost/media"
	"mediapost/proc"
	"mediapost/transcribe"
	"mediapost/tui"
	"mediapost/whisper"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build info - set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitInterrupted is the conventional status for a SIGINT exit
const exitInterrupted = 130

type appState struct {
	verbose  bool
	jsonLogs bool
	logFile  string
	dir      string

	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
	errOut io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	if code == 1 {
		fmt.Fprintln(errOut, tui.ErrorStyle.Render("Error: "+err.Error()))
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrInterrupted):
		return exitInterrupted
	}
	return 1
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &appState{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "mediapost",
		Short:         "Extract, re-encode, transcribe and fetch audio from an interactive menu",
		Long:          "mediapost lists the media files in the working directory and runs ffmpeg, whisper-cli or yt-dlp on the ones you pick.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSession(cmd.Context())
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	flags.BoolVar(&a.jsonLogs, "json", false, "Write logs as JSON")
	flags.StringVar(&a.logFile, "log-file", "", "Write logs to this file (default $"+config.EnvLogFile+")")
	flags.StringVar(&a.dir, "dir", "", "Working directory to scan for media files and models (default current directory)")

	cmd.AddCommand(newModelsCmd(a))
	return cmd
}

func versionTemplate() string {
	return fmt.Sprintf("{{.Name}} %s\n  commit: %s\n  built:  %s\n  go:     %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// setup loads .env, the environment config and the logger
func (a *appState) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	a.cfg = config.Load(nil)

	logFile := a.logFile
	if logFile == "" {
		logFile = a.cfg.LogFile
	}
	logger, err := logging.New(logging.Options{Verbose: a.verbose, JSON: a.jsonLogs, File: logFile})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = logger

	dir := a.dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
	}
	if a.dir, err = filepath.Abs(dir); err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	info, err := os.Stat(a.dir)
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s is not a directory", a.dir)
	}
	return nil
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

// preflight logs the external tools that cannot be found. Missing tools
// surface later as per-file failures rather than stopping the session.
func (a *appState) preflight() {
	for _, name := range []string{a.cfg.FFmpeg, a.cfg.YtDlp, a.cfg.Whisper} {
		if err := media.CheckTool(name); err != nil {
			a.log().Warn("external tool unavailable", zap.String("tool", name), zap.Error(err))
		}
	}
}

// runSession wires the interactive session and runs it until the user quits
func (a *appState) runSession(ctx context.Context) error {
	a.preflight()

	launcher := proc.NewExecLauncher(a.logger)
	screens := tui.NewScreens(launcher, a.logger)
	engine := whisper.NewEngine(a.cfg.Whisper, a.cfg.Tools(), launcher, a.logger)

	models := &transcribe.Orchestrator{
		Dir:      a.dir,
		Default:  whisper.DefaultModel,
		Backend:  transcribe.WhisperBackend{Engine: engine, Logger: a.logger},
		Prompter: screens,
		Progress: screens.Progress(ctx),
		Logger:   a.logger,
	}

	d := &app.Dispatcher{
		Dir:     a.dir,
		Tools:   a.cfg.Tools(),
		List:    media.ListFiles,
		Screens: screens,
		Models:  models,
		Logger:  a.logger,
	}

	a.log().Info("session started", zap.String("dir", a.dir), zap.String("version", version))
	err := d.Run(ctx)
	if err == nil && ctx.Err() != nil {
		err = app.ErrInterrupted
	}
	if err != nil {
		a.log().Info("session ended", zap.Error(err))
		return err
	}
	fmt.Fprintln(a.out, tui.MutedStyle.Render("Bye!"))
	return nil
}
