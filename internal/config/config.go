// Package config loads the configuration of the benchmark and of the
// multi-language harness.
//
// The benchmark binary accepts no flags: it is configured only through
// FIBBENCH_* environment variables, optionally read from a dotenv file. The
// number of terms is never configurable. The harness uses command-line flags
// with FIBBENCH_RUNNER_* environment fallbacks.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

const (
	// EnvPrefix prefixes every benchmark environment variable.
	EnvPrefix = "FIBBENCH_"
	// RunnerEnvPrefix prefixes every harness environment variable.
	RunnerEnvPrefix = "FIBBENCH_RUNNER_"

	// DefaultEnvFile is the dotenv file read when FIBBENCH_ENV_FILE is unset.
	DefaultEnvFile = ".env"
	// DefaultBenchDir is the directory holding the per-language sources.
	DefaultBenchDir = "fib_files"
	// DefaultResultsFile is where the harness writes its summary.
	DefaultResultsFile = "results.json"
	// DefaultLanguageTimeout bounds a single language run in the harness.
	DefaultLanguageTimeout = 5 * time.Minute
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// AppConfig is the configuration of the benchmark binary.
type AppConfig struct {
	// OutputDir is where result_go.json is written.
	OutputDir string
	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFormat is LogFormatJSON or LogFormatConsole.
	LogFormat string
	// MetricsFile, when set, receives the Prometheus metrics of the run.
	MetricsFile string
	// EnvFile is the dotenv file that was consulted.
	EnvFile string
}

// Level returns the parsed log level. It must only be called on a
// configuration returned by LoadAppConfig, which validates it.
func (c AppConfig) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// LoadAppConfig reads the benchmark configuration from the environment.
// Variables from the dotenv file never override variables already set.
// A missing dotenv file is not an error.
func LoadAppConfig() (AppConfig, error) {
	envFile := getEnvString("ENV_FILE", DefaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, apperrors.NewConfigError("cannot load %s: %v", envFile, err)
	}

	cfg := AppConfig{
		OutputDir:   getEnvString("OUTPUT_DIR", "."),
		LogLevel:    strings.ToLower(getEnvString("LOG_LEVEL", zerolog.InfoLevel.String())),
		LogFormat:   strings.ToLower(getEnvString("LOG_FORMAT", LogFormatJSON)),
		MetricsFile: getEnvString("METRICS_FILE", ""),
		EnvFile:     envFile,
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c AppConfig) Validate() error {
	if err := validateLogLevel(EnvPrefix+"LOG_LEVEL", c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return apperrors.NewConfigError("%sLOG_FORMAT must be %q or %q, got %q",
			EnvPrefix, LogFormatJSON, LogFormatConsole, c.LogFormat)
	}
	return nil
}

// RunnerConfig is the configuration of the multi-language harness.
type RunnerConfig struct {
	// Dir is the directory containing the per-language benchmark sources.
	Dir string
	// ResultsFile is the summary file written after a run.
	ResultsFile string
	// Languages selects languages by name; empty means all of them.
	Languages []string
	// Timeout bounds each language run.
	Timeout time.Duration
	// ViewOnly prints the previous summary without running anything.
	ViewOnly bool
	// TUI enables the interactive terminal view.
	TUI bool
	// NoColor disables colored output.
	NoColor bool
	// LogLevel is a zerolog level name.
	LogLevel string
}

// ParseRunnerConfig parses harness flags, then applies FIBBENCH_RUNNER_*
// environment variables to every flag that was not set explicitly.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: Command-line arguments without the program name.
//   - errorWriter: Destination of usage and parse errors.
//   - availableLanguages: Valid values for -lang.
//
// Returns:
//   - RunnerConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseRunnerConfig(programName string, args []string, errorWriter io.Writer, availableLanguages []string) (RunnerConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	cfg := RunnerConfig{}
	var langs string
	fs.StringVar(&cfg.Dir, "dir", DefaultBenchDir, "Directory containing the per-language benchmark sources.")
	fs.StringVar(&cfg.ResultsFile, "results", DefaultResultsFile, "Summary file written after the run.")
	fs.StringVar(&langs, "lang", "", fmt.Sprintf("Comma-separated languages to run (%s). Empty runs all.", strings.Join(availableLanguages, ", ")))
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultLanguageTimeout, "Maximum duration of a single language run.")
	fs.BoolVar(&cfg.ViewOnly, "view", false, "Only show the previous results.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show the interactive terminal view.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")
	fs.StringVar(&cfg.LogLevel, "log-level", zerolog.WarnLevel.String(), "Log level (debug, info, warn, error).")

	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errorWriter, "Runs the naive Fibonacci benchmark in every language and collects the results.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return RunnerConfig{}, err
	}
	if fs.NArg() > 0 {
		return RunnerConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	cfg.Languages = splitList(langs)

	applyRunnerEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableLanguages); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against the known languages.
func (c RunnerConfig) Validate(availableLanguages []string) error {
	if c.Dir == "" {
		return apperrors.NewConfigError("-dir must not be empty")
	}
	if c.ResultsFile == "" {
		return apperrors.NewConfigError("-results must not be empty")
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	for _, l := range c.Languages {
		if !slices.ContainsFunc(availableLanguages, func(a string) bool { return strings.EqualFold(a, l) }) {
			return apperrors.NewConfigError("unknown language %q (available: %s)", l, strings.Join(availableLanguages, ", "))
		}
	}
	return validateLogLevel("-log-level", c.LogLevel)
}

func validateLogLevel(name, level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil || level == "" {
		return apperrors.NewConfigError("%s: invalid log level %q", name, level)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
