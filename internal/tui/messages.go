package tui

import (
	"time"

	"github.com/agbru/fibbench/internal/result"
)

// LanguageStartedMsg is sent when the harness begins a language.
type LanguageStartedMsg struct {
	Name string
}

// OutputLineMsg carries one line printed by the running implementation.
type OutputLineMsg struct {
	Name string
	Line string
}

// LanguageFinishedMsg is sent when a language produced its record.
type LanguageFinishedMsg struct {
	Record result.Record
}

// LanguageFailedMsg is sent when a language could not produce a record.
type LanguageFailedMsg struct {
	Name string
	Err  error
}

// RunCompleteMsg is sent once every selected language has been run.
type RunCompleteMsg struct {
	Records []result.Record
	Err     error
}

// TickMsg drives periodic host sampling.
type TickMsg time.Time

// SysStatsMsg carries a host CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
