package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

func TestBenchmark_ObserveTerm(t *testing.T) {
	t.Parallel()

	b := NewBenchmark("Go")
	b.ObserveTerm(1, 1, 1, time.Microsecond)
	b.ObserveTerm(2, 1, 1, time.Microsecond)
	b.ObserveTerm(3, 2, 3, 2*time.Microsecond)

	if got := testutil.ToFloat64(b.terms); got != 3 {
		t.Errorf("terms_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(b.calls); got != 5 {
		t.Errorf("recursive_calls_total = %v, want 5", got)
	}
	if got := testutil.ToFloat64(b.lastValue); got != 2 {
		t.Errorf("last_term_value = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(b.termDuration); got != 1 {
		t.Errorf("term_duration_seconds series = %d, want 1", got)
	}
}

func TestBenchmark_ObserveRun(t *testing.T) {
	t.Parallel()

	b := NewBenchmark("Go")
	b.ObserveRun(1500 * time.Millisecond)

	if got := testutil.ToFloat64(b.runSeconds); got != 1.5 {
		t.Errorf("run_seconds = %v, want 1.5", got)
	}
	if got := testutil.ToFloat64(b.heapAlloc); got <= 0 {
		t.Errorf("heap_alloc_bytes = %v, want > 0", got)
	}
}

func TestBenchmark_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a := NewBenchmark("Go")
	b := NewBenchmark("Go")
	a.ObserveTerm(1, 1, 1, time.Nanosecond)

	if got := testutil.ToFloat64(b.terms); got != 0 {
		t.Errorf("second benchmark should not see first one's terms, got %v", got)
	}
}

func TestBenchmark_WriteTextfile(t *testing.T) {
	t.Parallel()

	b := NewBenchmark("Go")
	b.ObserveTerm(1, 1, 1, time.Microsecond)
	b.ObserveRun(time.Second)

	path := filepath.Join(t.TempDir(), "fibbench.prom")
	if err := b.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		`fibbench_terms_total{language="Go"} 1`,
		`fibbench_run_seconds{language="Go"} 1`,
		"fibbench_term_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics file should contain %q", want)
		}
	}
}

func TestBenchmark_WriteTextfileFailure(t *testing.T) {
	t.Parallel()

	b := NewBenchmark("Go")
	path := filepath.Join(t.TempDir(), "missing-dir", "fibbench.prom")
	err := b.WriteTextfile(path)

	var outputErr apperrors.OutputError
	if !errors.As(err, &outputErr) {
		t.Fatalf("expected OutputError, got %T: %v", err, err)
	}
}
