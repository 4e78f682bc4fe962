// Package cli renders harness progress and benchmark results on a plain
// terminal: a spinner while each language runs and a text listing of
// collected records.
package cli
