// Package app wires configuration, logging, metrics and tracing around the
// benchmark driver and the multi-language harness.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"path/filepath"
	"strings"

	"github.com/agbru/fibbench/internal/benchmark"
	"github.com/agbru/fibbench/internal/config"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/metrics"
	"github.com/agbru/fibbench/internal/result"
	"github.com/agbru/fibbench/internal/sysmon"
)

// Application represents the fibbench benchmark instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	RunID     string

	driverOpts []benchmark.Option
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithDriverOptions passes extra options to the benchmark driver.
func WithDriverOptions(opts ...benchmark.Option) AppOption {
	return func(a *Application) { a.driverOpts = append(a.driverOpts, opts...) }
}

// New creates a new Application from the environment. Logs are written to
// errWriter.
func New(errWriter io.Writer, opts ...AppOption) (*Application, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	logger, runID := newLogger(errWriter, cfg.LogFormat, cfg.Level(), "fibbench")
	app.Logger, app.RunID = logger, runID
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run executes the benchmark, writing the sequence to out and the result
// file to the configured directory. It returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	host := sysmon.DescribeHost()
	load := sysmon.Sample()
	a.Logger.Info("starting benchmark",
		logging.String("os", host.OS),
		logging.String("arch", host.Arch),
		logging.String("go_version", host.GoVersion),
		logging.Int("num_cpu", host.NumCPU),
		logging.String("cpu_model", host.ModelName),
		logging.String("cpu_features", strings.Join(host.Features, ",")),
		logging.Float64("cpu_percent", load.CPUPercent),
		logging.Float64("mem_percent", load.MemPercent),
	)

	recorder := metrics.NewBenchmark(result.Language)
	opts := append([]benchmark.Option{
		benchmark.WithLogger(a.Logger),
		benchmark.WithRecorder(recorder),
	}, a.driverOpts...)

	rec, err := benchmark.NewDriver(out, opts...).Run(ctx)
	if err != nil {
		a.Logger.Error("benchmark failed", err)
		return apperrors.ExitCodeFor(err)
	}

	path := filepath.Join(a.Config.OutputDir, result.FileName(rec.Language))
	if err := result.WriteFile(path, rec); err != nil {
		a.Logger.Error("cannot write result file", err, logging.String("path", path))
		return apperrors.ExitCodeFor(err)
	}

	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Warn("cannot write metrics file",
				logging.String("path", a.Config.MetricsFile),
				logging.Err(err),
			)
		}
	}

	a.Logger.Info("benchmark complete",
		logging.String("path", path),
		logging.Int("n", rec.N),
		logging.Float64("seconds", rec.Seconds),
	)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
