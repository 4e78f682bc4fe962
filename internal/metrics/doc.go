// Package metrics collects Prometheus metrics for a benchmark run and
// runtime memory snapshots. The registry is private to each Benchmark so
// that runs and tests never share global collector state.
package metrics
