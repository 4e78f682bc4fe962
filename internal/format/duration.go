// Package format holds pure formatting helpers shared by the CLI, the TUI and
// the harness.
package format

import (
	"fmt"
	"math"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// RoundSeconds rounds d, expressed in seconds, to the given number of
// decimal places (half away from zero).
func RoundSeconds(d time.Duration, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(d.Seconds()*scale) / scale
}
