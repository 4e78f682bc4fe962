package tui

import (
	"slices"
	"testing"
)

func TestRing_PushAndSlice(t *testing.T) {
	r := NewRing[string](3)
	if r.Slice() != nil {
		t.Fatal("empty ring should return nil")
	}
	r.Push("a")
	r.Push("b")
	if got := r.Slice(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Slice = %v", got)
	}
}

func TestRing_Overflow(t *testing.T) {
	r := NewRing[int](3)
	for i := 1; i <= 5; i++ {
		r.Push(i)
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	if got := r.Slice(); !slices.Equal(got, []int{3, 4, 5}) {
		t.Errorf("Slice = %v, want [3 4 5]", got)
	}
}

func TestRing_ZeroCapacity(t *testing.T) {
	r := NewRing[float64](0)
	r.Push(1)
	r.Push(2)
	if got := r.Slice(); !slices.Equal(got, []float64{2}) {
		t.Errorf("Slice = %v, want [2]", got)
	}
}

func TestRing_Reset(t *testing.T) {
	r := NewRing[string](2)
	r.Push("x")
	r.Reset()
	if r.Len() != 0 || r.Slice() != nil {
		t.Error("Reset should empty the ring")
	}
	r.Push("y")
	if got := r.Slice(); !slices.Equal(got, []string{"y"}) {
		t.Errorf("Slice after reset = %v", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"zero", []float64{0, 0}, "▁▁"},
		{"max", []float64{100}, "█"},
		{"clamped", []float64{-5, 250}, "▁█"},
		{"mid", []float64{50}, "▄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
