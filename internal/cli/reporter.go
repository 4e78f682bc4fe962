package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/harness"
	"github.com/agbru/fibbench/internal/result"
	"github.com/agbru/fibbench/internal/ui"
)

// Reporter implements harness.Observer for line-oriented terminals. A
// spinner shows overall progress and the latest line the running
// implementation printed.
type Reporter struct {
	out     io.Writer
	spinner Spinner
	total   int

	mu       sync.Mutex
	done     int
	current  string
	spinning bool
}

// Verify interface compliance.
var _ harness.Observer = (*Reporter)(nil)

// NewReporter returns a Reporter writing to out for a run of total
// languages.
func NewReporter(out io.Writer, total int) *Reporter {
	return &Reporter{
		out:     out,
		spinner: newSpinner(spinner.WithWriter(out)),
		total:   total,
	}
}

// LanguageStarted prints the language heading and starts the spinner.
func (r *Reporter) LanguageStarted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = name
	fmt.Fprintf(r.out, "%sRunning %s%s\n", ui.ColorBold(), name, ui.ColorReset())
	r.spinner.UpdateSuffix(r.suffix(""))
	r.spinner.Start()
	r.spinning = true
}

// Line shows the latest output line next to the spinner.
func (r *Reporter) Line(_ string, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spinner.UpdateSuffix(r.suffix(line))
}

// LanguageFinished stops the spinner and prints the harness timing.
func (r *Reporter) LanguageFinished(rec result.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stop()
	r.done++
	fmt.Fprintf(r.out, "%s✓ %s finished in %s seconds%s\n",
		ui.ColorGreen(), rec.Language, FormatSeconds(rec.Seconds), ui.ColorReset())
}

// LanguageFailed stops the spinner and prints the error.
func (r *Reporter) LanguageFailed(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stop()
	r.done++
	fmt.Fprintf(r.out, "%s✗ %s failed: %v%s\n", ui.ColorRed(), name, err, ui.ColorReset())
}

func (r *Reporter) stop() {
	if r.spinning {
		r.spinner.Stop()
		r.spinning = false
	}
}

// suffix must be called with r.mu held.
func (r *Reporter) suffix(line string) string {
	progress := 0.0
	if r.total > 0 {
		progress = float64(r.done) / float64(r.total)
	}
	s := fmt.Sprintf(" %s [%d/%d] %s", progressBar(progress, ProgressBarWidth), r.done+1, r.total, r.current)
	if line != "" {
		s += " " + ui.ColorDim() + truncate(line, MaxSuffixLineWidth) + ui.ColorReset()
	}
	return s
}

// FormatSeconds renders a harness timing the way it is stored, with the
// shortest representation that round-trips.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
