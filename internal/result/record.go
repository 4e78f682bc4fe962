// Package result defines the Result Record produced by every language
// implementation of the benchmark, its exact on-disk JSON layout, and the
// summary file the harness aggregates records into.
package result

import "strings"

// Language is the name this implementation reports in its record.
const Language = "Go"

// Record is the outcome of one benchmark run. It is created once, written
// once, and never mutated afterwards.
type Record struct {
	Language string  `json:"language"`
	N        int     `json:"n"`
	Sequence []int64 `json:"sequence"`
	Seconds  float64 `json:"seconds"`
}

// Slug turns a display name into the identifier used in file names:
// lower case, with '+' spelled as 'p' ("C++" becomes "cpp").
func Slug(language string) string {
	return strings.ReplaceAll(strings.ToLower(language), "+", "p")
}

// FileName returns the result file name for a language, e.g. "result_go.json".
func FileName(language string) string {
	return "result_" + Slug(language) + ".json"
}
