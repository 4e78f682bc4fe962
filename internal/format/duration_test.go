package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0µs"},
		{750 * time.Microsecond, "750µs"},
		{time.Millisecond, "1ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1s"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRoundSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d      time.Duration
		places int
		want   float64
	}{
		{1234567 * time.Microsecond, 3, 1.235},
		{1234 * time.Microsecond, 3, 0.001},
		{400 * time.Microsecond, 3, 0},
		{21337 * time.Millisecond, 3, 21.337},
		{1500 * time.Millisecond, 0, 2},
	}

	for _, tt := range tests {
		if got := RoundSeconds(tt.d, tt.places); got != tt.want {
			t.Errorf("RoundSeconds(%v, %d) = %v, want %v", tt.d, tt.places, got, tt.want)
		}
	}
}
