package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agbru/fibbench/internal/benchmark"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/result"
)

// setBenchEnv points the benchmark at dir and isolates it from any .env
// file in the working directory.
func setBenchEnv(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("FIBBENCH_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("FIBBENCH_OUTPUT_DIR", dir)
	t.Setenv("FIBBENCH_LOG_LEVEL", "info")
	t.Setenv("FIBBENCH_LOG_FORMAT", "json")
	t.Setenv("FIBBENCH_METRICS_FILE", "")
}

func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	setBenchEnv(t, t.TempDir())
	t.Setenv("FIBBENCH_LOG_FORMAT", "xml")

	_, err := New(&bytes.Buffer{})
	require.Error(t, err)
	require.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
}

func TestNew_RunID(t *testing.T) {
	setBenchEnv(t, t.TempDir())

	a, err := New(&bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, a.RunID, 36)

	b, err := New(&bytes.Buffer{})
	require.NoError(t, err)
	require.NotEqual(t, a.RunID, b.RunID)
}

func TestApplication_Run(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full recursive benchmark")
	}
	dir := t.TempDir()
	setBenchEnv(t, dir)
	metricsPath := filepath.Join(dir, "fibbench.prom")
	t.Setenv("FIBBENCH_METRICS_FILE", metricsPath)

	var stdout, stderr bytes.Buffer
	app, err := New(&stderr, WithDriverOptions(benchmark.WithClock(stepClock(time.Millisecond))))
	require.NoError(t, err)

	code := app.Run(context.Background(), &stdout)
	require.Equal(t, apperrors.ExitSuccess, code, stderr.String())

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 40)
	require.Equal(t, "1. fibonacci: 1", lines[0])
	require.Equal(t, "40. fibonacci: 102334155", lines[39])

	data, err := os.ReadFile(filepath.Join(dir, "result_go.json"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "{\n  \"language\": \"Go\",\n  \"n\": 40,\n  \"sequence\": [1, 1, 2, 3, 5, 8,"))
	// 42 clock reads one millisecond apart; the loop spans 41 of them.
	require.True(t, strings.HasSuffix(string(data), "\"seconds\": 0.041000\n}\n"), string(data))

	rec, err := result.ReadFile(filepath.Join(dir, "result_go.json"))
	require.NoError(t, err)
	require.Len(t, rec.Sequence, 40)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(prom), `fibbench_terms_total{language="Go"} 40`)

	require.Contains(t, stderr.String(), `"run_id":"`+app.RunID+`"`)
	require.Contains(t, stderr.String(), `"message":"benchmark complete"`)
	require.NotContains(t, stdout.String(), "run_id", "logs must stay off stdout")
}

func TestApplication_Run_OutputFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full recursive benchmark")
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	setBenchEnv(t, dir)
	t.Setenv("FIBBENCH_OUTPUT_DIR", filepath.Join(blocker, "out"))

	var stderr bytes.Buffer
	app, err := New(&stderr)
	require.NoError(t, err)

	code := app.Run(context.Background(), &bytes.Buffer{})
	require.Equal(t, apperrors.ExitErrorOutput, code)
	require.Contains(t, stderr.String(), "cannot write result file")
}

func TestApplication_Run_MetricsFailureKeepsExitCode(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the full recursive benchmark")
	}
	dir := t.TempDir()
	setBenchEnv(t, dir)
	t.Setenv("FIBBENCH_METRICS_FILE", filepath.Join(dir, "no", "such", "dir", "m.prom"))

	var stderr bytes.Buffer
	app, err := New(&stderr)
	require.NoError(t, err)

	code := app.Run(context.Background(), &bytes.Buffer{})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, stderr.String(), "cannot write metrics file")
	require.FileExists(t, filepath.Join(dir, "result_go.json"))
}
