package ui

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme. The string fields are ANSI escape sequences used
// by line-oriented output; TUI carries the matching lipgloss palette.
type Theme struct {
	Name      string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Bold      string
	Reset     string

	TUI TUITheme
}

// TUITheme holds lipgloss colors for the bubbletea view.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the palette of the bubbletea view on dark terminals.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Success: lipgloss.Color("#9ece6a"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}

	// DarkTheme is the default theme, using 256-color escapes.
	DarkTheme = Theme{
		Name:      "dark",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		TUI:       DarkTUITheme,
	}

	// NoColorTheme disables colors, for -no-color and NO_COLOR.
	NoColorTheme = Theme{
		Name: "none",
		TUI:  NoColorTUITheme,
	}
)

var current atomic.Pointer[Theme]

func init() {
	SetCurrentTheme(DarkTheme)
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	return *current.Load()
}

// GetCurrentTUITheme returns the lipgloss palette of the active theme.
func GetCurrentTUITheme() TUITheme {
	return current.Load().TUI
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	current.Store(&t)
}

// InitTheme selects NoColorTheme when noColor is set or the NO_COLOR
// environment variable exists (https://no-color.org/), DarkTheme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
