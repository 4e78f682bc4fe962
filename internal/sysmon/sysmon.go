// Package sysmon provides system-wide CPU and memory usage sampling and a
// description of the host, logged next to every benchmark run so that
// timings can be compared across machines.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	xcpu "golang.org/x/sys/cpu"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Host describes the machine a benchmark ran on.
type Host struct {
	OS        string
	Arch      string
	GoVersion string
	NumCPU    int
	ModelName string   // empty when the CPU model cannot be read
	Features  []string // notable instruction set extensions
}

// DescribeHost gathers static host information. It never fails; fields
// that cannot be determined are left empty.
func DescribeHost() Host {
	h := Host{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		Features:  cpuFeatures(),
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.ModelName = infos[0].ModelName
	}
	return h
}

func cpuFeatures() []string {
	var features []string
	add := func(name string, ok bool) {
		if ok {
			features = append(features, name)
		}
	}
	add("sse4.2", xcpu.X86.HasSSE42)
	add("avx", xcpu.X86.HasAVX)
	add("avx2", xcpu.X86.HasAVX2)
	add("avx512f", xcpu.X86.HasAVX512F)
	add("bmi2", xcpu.X86.HasBMI2)
	add("asimd", xcpu.ARM64.HasASIMD)
	add("atomics", xcpu.ARM64.HasATOMICS)
	return features
}
