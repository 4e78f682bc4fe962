package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/ui"
)

// Style variables for the harness view.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle        lipgloss.Style
	titleStyle        lipgloss.Style
	languageStyle     lipgloss.Style
	outputStyle       lipgloss.Style
	successStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	dimStyle          lipgloss.Style
	cpuSparklineStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	languageStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	outputStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	cpuSparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
