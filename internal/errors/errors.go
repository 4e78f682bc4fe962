package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorOutput   = 3   // Indicates a result or summary file could not be written.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// environment values. It indicates that the application cannot proceed due to
// incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// OutputError reports a failure to create, write or close an output artifact
// (the per-language result file, the metrics file or the harness summary).
type OutputError struct {
	// Path is the file that could not be written.
	Path string
	// Cause is the underlying I/O error.
	Cause error
}

// Error returns a message naming the file and the cause.
func (e OutputError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying I/O error.
func (e OutputError) Unwrap() error { return e.Cause }

// RunError reports the failure of a single language run in the harness.
type RunError struct {
	// Language is the display name of the language that failed.
	Language string
	// Cause is the underlying error.
	Cause error
}

// Error returns a message naming the language and the cause.
func (e RunError) Error() string {
	return fmt.Sprintf("%s benchmark: %v", e.Language, e.Cause)
}

// Unwrap returns the underlying error.
func (e RunError) Unwrap() error { return e.Cause }

// WrapError prefixes err with a formatted message and keeps it in the
// chain. It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err stems from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code. Cancellation takes
// precedence over the error's own class, so an interrupted write still exits
// with ExitErrorCanceled.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	}

	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	var outputErr OutputError
	if errors.As(err, &outputErr) {
		return ExitErrorOutput
	}
	return ExitErrorGeneric
}
