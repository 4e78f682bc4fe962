package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/harness"
	"github.com/agbru/fibbench/internal/result"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the harness goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Observer implements harness.Observer by forwarding every event to the
// bubbletea program as a message.
type Observer struct {
	ref *programRef
}

// Verify interface compliance.
var _ harness.Observer = (*Observer)(nil)

// LanguageStarted sends a LanguageStartedMsg.
func (o *Observer) LanguageStarted(name string) {
	o.ref.Send(LanguageStartedMsg{Name: name})
}

// Line sends an OutputLineMsg.
func (o *Observer) Line(name, line string) {
	o.ref.Send(OutputLineMsg{Name: name, Line: line})
}

// LanguageFinished sends a LanguageFinishedMsg.
func (o *Observer) LanguageFinished(rec result.Record) {
	o.ref.Send(LanguageFinishedMsg{Record: rec})
}

// LanguageFailed sends a LanguageFailedMsg.
func (o *Observer) LanguageFailed(name string, err error) {
	o.ref.Send(LanguageFailedMsg{Name: name, Err: err})
}
