package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/fibbench/internal/harness"
	"github.com/agbru/fibbench/internal/result"
	"github.com/agbru/fibbench/internal/sysmon"
)

const (
	// OutputTailLines is the number of output lines kept for the running language.
	OutputTailLines = 20
	cpuSampleCount  = 40
	tickInterval    = 500 * time.Millisecond
)

// RunFunc runs the selected languages and returns their records.
type RunFunc func(ctx context.Context) ([]result.Record, error)

type failure struct {
	name string
	err  error
}

// Model is the root bubbletea model of the harness view.
type Model struct {
	keymap  KeyMap
	help    help.Model
	spinner spinner.Model

	ctx    context.Context
	cancel context.CancelFunc
	run    RunFunc

	total     int
	current   string
	output    *Ring[string]
	finished  []result.Record
	failed    []failure
	cpu       *Ring[float64]
	mem       float64
	startTime time.Time
	width     int

	quitting bool
	done     bool
	records  []result.Record
	err      error
}

// NewModel creates a model that runs total languages through run.
func NewModel(parentCtx context.Context, total int, run RunFunc) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle))
	return Model{
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		ctx:       ctx,
		cancel:    cancel,
		run:       run,
		total:     total,
		output:    NewRing[string](OutputTailLines),
		cpu:       NewRing[float64](cpuSampleCount),
		startTime: time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startRunCmd(m.ctx, m.run),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LanguageStartedMsg:
		m.current = msg.Name
		m.output.Reset()
		return m, nil

	case OutputLineMsg:
		if msg.Name == m.current {
			m.output.Push(msg.Line)
		}
		return m, nil

	case LanguageFinishedMsg:
		m.finished = append(m.finished, msg.Record)
		m.current = ""
		return m, nil

	case LanguageFailedMsg:
		m.failed = append(m.failed, failure{name: msg.Name, err: msg.Err})
		m.current = ""
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.records = msg.Records
		m.err = msg.Err
		return m, tea.Quit

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem = msg.MemPercent
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		// Cleanup steps still run after cancellation; quit once the run
		// reports completion.
		m.cancel()
		if m.done {
			return m, tea.Quit
		}
		m.quitting = true
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// View renders the harness view.
func (m Model) View() string {
	var b strings.Builder

	elapsed := time.Since(m.startTime).Truncate(100 * time.Millisecond)
	fmt.Fprintf(&b, "%s  %s\n",
		titleStyle.Render("Fibonacci benchmark"),
		dimStyle.Render(fmt.Sprintf("[%d/%d] %s", len(m.finished)+len(m.failed), m.total, elapsed)),
	)
	if m.cpu.Len() > 0 {
		fmt.Fprintf(&b, "%s %s %s\n",
			dimStyle.Render("CPU"),
			cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice())),
			dimStyle.Render(fmt.Sprintf("MEM %.0f%%", m.mem)),
		)
	}
	b.WriteString("\n")

	switch {
	case m.quitting && !m.done:
		b.WriteString(errorStyle.Render("Canceling, waiting for cleanup...") + "\n")
	case m.current != "":
		fmt.Fprintf(&b, "%s Running %s\n", m.spinner.View(), languageStyle.Render(m.current))
		if lines := m.output.Slice(); len(lines) > 0 {
			body := outputStyle.Render(strings.Join(lines, "\n"))
			if m.width > 4 {
				b.WriteString(panelStyle.Width(m.width-4).Render(body) + "\n")
			} else {
				b.WriteString(panelStyle.Render(body) + "\n")
			}
		}
	}

	if len(m.finished) > 0 || len(m.failed) > 0 {
		b.WriteString("\n")
	}
	for _, rec := range m.finished {
		fmt.Fprintf(&b, "%s\n", successStyle.Render(
			fmt.Sprintf("✓ %s finished in %v seconds", rec.Language, rec.Seconds)))
	}
	for _, f := range m.failed {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render(fmt.Sprintf("✗ %s: %v", f.name, f.err)))
	}

	b.WriteString("\n" + m.help.View(m.keymap))
	return b.String()
}

// Run is the public entry point for the TUI mode. It attaches an observer
// to runner, runs langs under the bubbletea program and returns what
// RunAll returned.
func Run(ctx context.Context, runner *harness.Runner, langs []harness.Language) ([]result.Record, error) {
	// Rebuild styles from the current ui theme (set by the caller via InitTheme).
	initTUIStyles()

	ref := &programRef{}
	runner.Observer = &Observer{ref: ref}

	model := NewModel(ctx, len(langs), func(ctx context.Context) ([]result.Record, error) {
		return runner.RunAll(ctx, langs)
	})
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the observer can Send.
	ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return nil, nil
	}
	return m.records, m.err
}

// startRunCmd returns a tea.Cmd that runs the harness to completion.
func startRunCmd(ctx context.Context, run RunFunc) tea.Cmd {
	return func() tea.Msg {
		records, err := run(ctx)
		return RunCompleteMsg{Records: records, Err: err}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}
