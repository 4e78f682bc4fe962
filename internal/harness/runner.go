package harness

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/result"
)

// Observer receives progress events from a Runner. Calls happen on the
// goroutine executing the run, except Line, which is called from the output
// scanning goroutine; the Runner never calls two methods concurrently for
// the same language.
type Observer interface {
	LanguageStarted(name string)
	Line(name, line string)
	LanguageFinished(rec result.Record)
	LanguageFailed(name string, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) LanguageStarted(string)         {}
func (NopObserver) Line(string, string)            {}
func (NopObserver) LanguageFinished(result.Record) {}
func (NopObserver) LanguageFailed(string, error)   {}

const (
	// secondsPrecision is the number of decimals kept for harness timings.
	secondsPrecision = 3

	tracerName = "github.com/agbru/fibbench/internal/harness"
)

// Runner executes language benchmarks sequentially inside Dir.
type Runner struct {
	Dir      string
	Timeout  time.Duration
	Commands CommandRunner
	Observer Observer
	Logger   logging.Logger
	Now      func() time.Time
	// Tracer defaults to the global provider's tracer when nil.
	Tracer trace.Tracer
}

// NewRunner returns a Runner using child processes, a no-op observer and
// the real clock.
func NewRunner(dir string, timeout time.Duration, logger logging.Logger) *Runner {
	return &Runner{
		Dir:      dir,
		Timeout:  timeout,
		Commands: ExecRunner{},
		Observer: NopObserver{},
		Logger:   logger,
		Now:      time.Now,
		Tracer:   otel.Tracer(tracerName),
	}
}

func (r *Runner) tracer() trace.Tracer {
	if r.Tracer != nil {
		return r.Tracer
	}
	return otel.Tracer(tracerName)
}

// RunAll runs every language in order. A failing language does not stop the
// others; its error is collected and returned joined with the rest. Only
// cancellation of ctx stops the loop early.
func (r *Runner) RunAll(ctx context.Context, langs []Language) ([]result.Record, error) {
	records := make([]result.Record, 0, len(langs))
	var errs []error
	for _, lang := range langs {
		rec, err := r.RunLanguage(ctx, lang)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

// RunLanguage prepares, runs and cleans up one language and returns its
// record. Exit statuses of prepare, run and cleanup steps are logged but do
// not fail the language; a missing result file yields a fallback record with
// an empty sequence. The record's seconds are always the harness's own
// wall-clock measurement of the run step, rounded to milliseconds.
func (r *Runner) RunLanguage(ctx context.Context, lang Language) (rec result.Record, err error) {
	ctx, span := r.tracer().Start(ctx, "harness.RunLanguage",
		trace.WithAttributes(attribute.String("benchmark.language", lang.Name)),
	)
	defer span.End()

	r.Observer.LanguageStarted(lang.Name)
	defer func() {
		if err != nil {
			err = apperrors.RunError{Language: lang.Name, Cause: err}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.Observer.LanguageFailed(lang.Name, err)
			return
		}
		span.SetAttributes(
			attribute.Float64("benchmark.seconds", rec.Seconds),
			attribute.Int("benchmark.sequence_length", len(rec.Sequence)),
		)
		r.Observer.LanguageFinished(rec)
	}()

	resultPath := filepath.Join(r.Dir, lang.ResultFile())
	if err := os.Remove(resultPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result.Record{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	for _, step := range lang.Prepare {
		r.runStep(runCtx, lang.Name, "prepare", step)
	}

	start := r.Now()
	runErr := r.Commands.Run(runCtx, r.Dir, lang.Command, func(line string) {
		r.Observer.Line(lang.Name, line)
	})
	elapsed := r.Now().Sub(start)
	switch {
	case runErr == nil:
	case apperrors.IsContextError(runErr):
		r.Logger.Warn("benchmark command interrupted",
			logging.String("language", lang.Name),
			logging.Err(runErr),
		)
	default:
		r.Logger.Warn("benchmark command failed",
			logging.String("language", lang.Name),
			logging.Err(runErr),
		)
	}

	// Cleanup runs even when the run step was interrupted.
	cleanupCtx, cancelCleanup := context.WithTimeout(context.WithoutCancel(ctx), r.Timeout)
	defer cancelCleanup()
	for _, step := range lang.Cleanup {
		r.runStep(cleanupCtx, lang.Name, "cleanup", step)
	}

	if err := ctx.Err(); err != nil {
		return result.Record{}, err
	}
	if runErr != nil && runCtx.Err() != nil {
		return result.Record{}, runCtx.Err()
	}

	rec, err = result.ReadFile(resultPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Logger.Warn("no result file, using fallback record",
			logging.String("language", lang.Name),
			logging.String("path", resultPath),
		)
		rec = result.Record{
			Language: lang.Name,
			N:        fibonacci.BenchmarkTerms,
			Sequence: []int64{},
		}
	case err != nil:
		return result.Record{}, err
	}

	rec.Seconds = format.RoundSeconds(elapsed, secondsPrecision)
	return rec, nil
}

func (r *Runner) runStep(ctx context.Context, language, phase string, argv []string) {
	err := r.Commands.Run(ctx, r.Dir, argv, func(line string) {
		r.Logger.Debug(line, logging.String("language", language), logging.String("phase", phase))
	})
	if err != nil {
		r.Logger.Warn(phase+" step failed",
			logging.String("language", language),
			logging.Err(err),
		)
	}
}
