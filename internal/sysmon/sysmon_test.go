package sysmon

import (
	"runtime"
	"testing"
)

func TestSample_Ranges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestDescribeHost(t *testing.T) {
	h := DescribeHost()
	if h.OS != runtime.GOOS || h.Arch != runtime.GOARCH {
		t.Errorf("unexpected platform %s/%s", h.OS, h.Arch)
	}
	if h.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want >= 1", h.NumCPU)
	}
	if h.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
	for _, f := range h.Features {
		if f == "" {
			t.Error("feature names should not be empty")
		}
	}
}
