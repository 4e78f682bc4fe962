package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Benchmark Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// BenchmarkTerms is the number of terms the benchmark computes. It is
	// fixed so that timings stay comparable across languages.
	BenchmarkTerms = 40

	// MaxExactIndex is the largest index whose value fits in an int64.
	// Fib(MaxExactIndex+1) wraps around.
	MaxExactIndex = 91
)
