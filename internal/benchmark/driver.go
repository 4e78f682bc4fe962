// Package benchmark runs the timed loop: it computes the first N terms with
// the naive recursive function, prints each one, and produces the Result
// Record for the run.
package benchmark

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/result"
)

const tracerName = "github.com/agbru/fibbench/internal/benchmark"

var discardLogger = log.New(io.Discard, "", 0)

// Recorder receives measurements from the timed loop. Implementations must
// be cheap: ObserveTerm runs between terms, inside the measured interval.
type Recorder interface {
	ObserveTerm(index int, value int64, calls uint64, d time.Duration)
	ObserveRun(elapsed time.Duration)
}

// Driver executes one benchmark run. The zero value is not usable; build one
// with NewDriver.
type Driver struct {
	out      io.Writer
	n        int
	language string
	now      func() time.Time
	logger   logging.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logging.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Driver) { d.tracer = tp.Tracer(tracerName) }
}

// withTerms overrides the number of terms; only tests use it.
func withTerms(n int) Option {
	return func(d *Driver) { d.n = n }
}

// NewDriver returns a driver printing sequence lines to out.
func NewDriver(out io.Writer, opts ...Option) *Driver {
	d := &Driver{
		out:      out,
		n:        fibonacci.BenchmarkTerms,
		language: result.Language,
		now:      time.Now,
		logger:   logging.NewStdLoggerAdapter(discardLogger),
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run computes terms 1..N in order, writing "{i}. fibonacci: {value}" for
// each, and returns the Result Record. The clock starts before the first
// term and stops after the last line is written.
//
// A failure to write a line to the output aborts the run.
func (d *Driver) Run(ctx context.Context) (rec result.Record, err error) {
	_, span := d.tracer.Start(ctx, "benchmark.Run", trace.WithAttributes(
		attribute.String("benchmark.language", d.language),
		attribute.Int("benchmark.n", d.n),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Float64("benchmark.seconds", rec.Seconds))
		}
		span.End()
	}()

	sequence := make([]int64, 0, d.n)

	start := d.now()
	last := start
	for i := 1; i <= d.n; i++ {
		value := fibonacci.Term(i)
		sequence = append(sequence, value)
		if _, err := fmt.Fprintf(d.out, "%d. fibonacci: %d\n", i, value); err != nil {
			return result.Record{}, apperrors.WrapError(err, "write term %d", i)
		}

		t := d.now()
		d.recorder.ObserveTerm(i, value, fibonacci.CallsFor(value), t.Sub(last))
		last = t
	}
	end := d.now()

	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	d.recorder.ObserveRun(elapsed)
	span.AddEvent("loop.done", trace.WithAttributes(attribute.Int64("benchmark.last_term", lastOf(sequence))))

	d.logger.Debug("benchmark loop finished",
		logging.Int("n", d.n),
		logging.Duration("elapsed", elapsed),
	)

	return result.Record{
		Language: d.language,
		N:        d.n,
		Sequence: sequence,
		Seconds:  elapsed.Seconds(),
	}, nil
}

func lastOf(s []int64) int64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

type nopRecorder struct{}

func (nopRecorder) ObserveTerm(int, int64, uint64, time.Duration) {}
func (nopRecorder) ObserveRun(time.Duration)                      {}
