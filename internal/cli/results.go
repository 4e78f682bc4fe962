package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/result"
	"github.com/agbru/fibbench/internal/ui"
)

const (
	noResultsMessage  = "No previous results yet."
	noSequenceMessage = "No sequence found in result file."
)

func headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ui.GetCurrentTUITheme().Accent)
}

// DisplayResults prints every record: a heading with the language and its
// timing, then the sequence joined with ", ".
func DisplayResults(out io.Writer, records []result.Record) {
	heading := headingStyle()
	for _, rec := range records {
		fmt.Fprintln(out, heading.Render(fmt.Sprintf("%s - %s seconds", rec.Language, FormatSeconds(rec.Seconds))))
		if len(rec.Sequence) == 0 {
			fmt.Fprintf(out, "%s%s%s\n", ui.ColorYellow(), noSequenceMessage, ui.ColorReset())
			continue
		}
		fmt.Fprintln(out, result.JoinSequence(rec.Sequence))
	}
}

// DisplayNoResults prints the message shown when no summary exists yet.
func DisplayNoResults(out io.Writer) {
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorYellow(), noResultsMessage, ui.ColorReset())
}
