// Package tui provides a bubbletea view of a harness run: the language in
// progress with the tail of its output, the languages already finished, and
// a sparkline of host CPU load.
package tui
