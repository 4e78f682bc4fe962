package app

import (
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/logging"
)

// newLogger builds the structured logger of one process run. Every entry
// carries the component name and a fresh run id.
func newLogger(w io.Writer, format string, level zerolog.Level, component string) (*logging.ZerologAdapter, string) {
	var base *logging.ZerologAdapter
	if format == config.LogFormatConsole {
		base = logging.NewConsoleLogger(w, component)
	} else {
		base = logging.NewLogger(w, component)
	}
	runID := uuid.NewString()
	leveled := logging.NewZerologAdapter(base.Zerolog().Level(level))
	return leveled.With(logging.String("run_id", runID)), runID
}
