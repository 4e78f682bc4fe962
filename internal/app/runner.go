package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/fibbench/internal/cli"
	"github.com/agbru/fibbench/internal/config"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/harness"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/result"
	"github.com/agbru/fibbench/internal/tui"
	"github.com/agbru/fibbench/internal/ui"
)

// Runner represents the fibbench-runner harness instance.
type Runner struct {
	Config    config.RunnerConfig
	ErrWriter io.Writer
	Languages []harness.Language
	Logger    logging.Logger

	commands harness.CommandRunner
	runTUI   func(context.Context, *harness.Runner, []harness.Language) ([]result.Record, error)
}

// RunnerOption configures a Runner during construction.
type RunnerOption func(*Runner)

// WithLanguages replaces the built-in language table.
func WithLanguages(langs []harness.Language) RunnerOption {
	return func(r *Runner) { r.Languages = langs }
}

// WithCommandRunner replaces the process executor used by the harness.
func WithCommandRunner(c harness.CommandRunner) RunnerOption {
	return func(r *Runner) { r.commands = c }
}

// NewRunner creates a harness instance by parsing command-line arguments.
func NewRunner(args []string, errWriter io.Writer, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{ErrWriter: errWriter, Languages: harness.DefaultLanguages(), runTUI: tui.Run}
	for _, opt := range opts {
		opt(r)
	}

	programName := "fibbench-runner"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseRunnerConfig(programName, cmdArgs, errWriter, harness.Names(r.Languages))
	if err != nil {
		return nil, err
	}
	r.Config = cfg

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	r.Logger, _ = newLogger(errWriter, config.LogFormatConsole, level, "fibbench-runner")
	return r, nil
}

// Run executes the harness, or only shows the previous summary in view
// mode. It returns the process exit code.
func (r *Runner) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(r.Config.NoColor)

	if r.Config.ViewOnly {
		return r.view(out)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	langs := harness.Select(r.Languages, r.Config.Languages)
	hr := harness.NewRunner(r.Config.Dir, r.Config.Timeout, r.Logger)
	if r.commands != nil {
		hr.Commands = r.commands
	}

	start := time.Now()
	var (
		records []result.Record
		runErr  error
	)
	if r.Config.TUI {
		records, runErr = r.runTUI(ctx, hr, langs)
	} else {
		fmt.Fprintf(out, "Running %d language benchmarks, this may take a while...\n", len(langs))
		hr.Observer = cli.NewReporter(out, len(langs))
		records, runErr = hr.RunAll(ctx, langs)
	}

	// Quitting the TUI cancels only the view's own context, so the run error
	// is checked as well.
	if err := ctx.Err(); err != nil || errors.Is(runErr, context.Canceled) {
		if err == nil {
			err = context.Canceled
		}
		r.Logger.Warn("run interrupted, summary not written", logging.Err(err))
		return apperrors.ExitErrorCanceled
	}

	if err := result.WriteSummary(r.Config.ResultsFile, records); err != nil {
		r.Logger.Error("cannot write summary", err)
		fmt.Fprintf(r.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitCodeFor(err)
	}
	fmt.Fprintf(out, "%sAll benchmarks complete in %s. Results saved to %s%s\n\n",
		ui.ColorGreen(), format.FormatExecutionDuration(time.Since(start)), r.Config.ResultsFile, ui.ColorReset())
	cli.DisplayResults(out, records)

	if runErr != nil {
		r.Logger.Error("some benchmarks failed", runErr)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (r *Runner) view(out io.Writer) int {
	records, err := result.ReadSummary(r.Config.ResultsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cli.DisplayNoResults(out)
		return apperrors.ExitSuccess
	case err != nil:
		fmt.Fprintf(r.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	cli.DisplayResults(out, records)
	return apperrors.ExitSuccess
}
