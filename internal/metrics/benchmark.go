package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

const namespace = "fibbench"

// Benchmark records per-term and per-run measurements of the benchmark.
type Benchmark struct {
	registry *prometheus.Registry

	terms        prometheus.Counter
	calls        prometheus.Counter
	termDuration prometheus.Histogram
	lastValue    prometheus.Gauge
	runSeconds   prometheus.Gauge
	heapAlloc    prometheus.Gauge
	heapObjects  prometheus.Gauge
	gcCycles     prometheus.Gauge
}

// NewBenchmark creates the collectors for one run, labelled with the
// implementing language, and registers them together with the Go runtime
// collector on a fresh registry.
func NewBenchmark(language string) *Benchmark {
	labels := prometheus.Labels{"language": language}
	b := &Benchmark{
		registry: prometheus.NewRegistry(),
		terms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "terms_total",
			Help:        "Number of sequence terms computed.",
			ConstLabels: labels,
		}),
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "recursive_calls_total",
			Help:        "Number of recursive function invocations performed.",
			ConstLabels: labels,
		}),
		termDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "term_duration_seconds",
			Help:        "Wall-clock time spent computing and printing a single term.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1e-7, 4, 14),
		}),
		lastValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "last_term_value",
			Help:        "Value of the most recently computed term.",
			ConstLabels: labels,
		}),
		runSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_seconds",
			Help:        "Elapsed wall-clock time of the timed loop.",
			ConstLabels: labels,
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "heap_alloc_bytes",
			Help:        "Heap bytes in use after the timed loop.",
			ConstLabels: labels,
		}),
		heapObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "heap_objects",
			Help:        "Allocated heap objects after the timed loop.",
			ConstLabels: labels,
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "gc_cycles",
			Help:        "Completed GC cycles after the timed loop.",
			ConstLabels: labels,
		}),
	}

	b.registry.MustRegister(
		b.terms,
		b.calls,
		b.termDuration,
		b.lastValue,
		b.runSeconds,
		b.heapAlloc,
		b.heapObjects,
		b.gcCycles,
		collectors.NewGoCollector(),
	)
	return b
}

// ObserveTerm records one computed term. calls is the number of recursive
// invocations the term required.
func (b *Benchmark) ObserveTerm(_ int, value int64, calls uint64, d time.Duration) {
	b.terms.Inc()
	b.calls.Add(float64(calls))
	b.termDuration.Observe(d.Seconds())
	b.lastValue.Set(float64(value))
}

// ObserveRun records the elapsed time of the timed loop and samples memory.
func (b *Benchmark) ObserveRun(elapsed time.Duration) {
	b.runSeconds.Set(elapsed.Seconds())

	b.sampleMemory()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler or tests.
func (b *Benchmark) Registry() *prometheus.Registry { return b.registry }

// WriteTextfile writes every registered metric to path in the Prometheus
// text exposition format, suitable for the node_exporter textfile collector.
func (b *Benchmark) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, b.registry); err != nil {
		return apperrors.OutputError{Path: path, Cause: err}
	}
	return nil
}
