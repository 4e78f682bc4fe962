package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/fibbench/internal/errors"
)

var testLanguages = []string{"Python", "C++", "Java", "R", "PHP", "Go"}

// clearEnv makes sure the given variables are unset for the duration of the
// test and restored afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPrefix+"ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	clearEnv(t, EnvPrefix+"OUTPUT_DIR", EnvPrefix+"LOG_LEVEL", EnvPrefix+"LOG_FORMAT", EnvPrefix+"METRICS_FILE")
	noEnvFile(t)

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if cfg.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, ".")
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
	if cfg.LogFormat != LogFormatJSON {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, LogFormatJSON)
	}
	if cfg.MetricsFile != "" {
		t.Errorf("MetricsFile = %q, want empty", cfg.MetricsFile)
	}
}

func TestLoadAppConfig_Environment(t *testing.T) {
	noEnvFile(t)
	t.Setenv(EnvPrefix+"OUTPUT_DIR", "out")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "DEBUG")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "console")
	t.Setenv(EnvPrefix+"METRICS_FILE", "fibbench.prom")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if cfg.OutputDir != "out" || cfg.MetricsFile != "fibbench.prom" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Level() != zerolog.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.LogFormat != LogFormatConsole {
		t.Errorf("LogFormat = %q, want console", cfg.LogFormat)
	}
}

func TestLoadAppConfig_DotEnv(t *testing.T) {
	clearEnv(t, EnvPrefix+"OUTPUT_DIR", EnvPrefix+"METRICS_FILE", EnvPrefix+"LOG_FORMAT")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "warn")

	envFile := filepath.Join(t.TempDir(), "bench.env")
	content := "FIBBENCH_OUTPUT_DIR=from-dotenv\nFIBBENCH_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Setenv(EnvPrefix+"ENV_FILE", envFile)

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if cfg.OutputDir != "from-dotenv" {
		t.Errorf("OutputDir = %q, want value from dotenv file", cfg.OutputDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, existing environment should win over dotenv", cfg.LogLevel)
	}
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad level", "LOG_LEVEL", "loud"},
		{"bad format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, EnvPrefix+"LOG_LEVEL", EnvPrefix+"LOG_FORMAT")
			noEnvFile(t)
			t.Setenv(EnvPrefix+tt.key, tt.val)

			_, err := LoadAppConfig()
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected ConfigError, got %T: %v", err, err)
			}
		})
	}
}

func clearRunnerEnv(t *testing.T) {
	t.Helper()
	for _, o := range runnerEnvOverrides {
		clearEnv(t, RunnerEnvPrefix+o.envKey)
	}
}

func TestParseRunnerConfig_Defaults(t *testing.T) {
	clearRunnerEnv(t)

	cfg, err := ParseRunnerConfig("fibbench-runner", nil, io.Discard, testLanguages)
	if err != nil {
		t.Fatalf("ParseRunnerConfig returned error: %v", err)
	}
	if cfg.Dir != DefaultBenchDir || cfg.ResultsFile != DefaultResultsFile {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if cfg.Timeout != DefaultLanguageTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultLanguageTimeout)
	}
	if len(cfg.Languages) != 0 || cfg.ViewOnly || cfg.TUI || cfg.NoColor {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseRunnerConfig_Flags(t *testing.T) {
	clearRunnerEnv(t)

	args := []string{"-dir", "bench", "-results", "out.json", "-lang", "go, C++ ,", "-timeout", "30s", "-tui", "-no-color"}
	cfg, err := ParseRunnerConfig("fibbench-runner", args, io.Discard, testLanguages)
	if err != nil {
		t.Fatalf("ParseRunnerConfig returned error: %v", err)
	}
	if cfg.Dir != "bench" || cfg.ResultsFile != "out.json" {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[0] != "go" || cfg.Languages[1] != "C++" {
		t.Errorf("Languages = %q", cfg.Languages)
	}
	if cfg.Timeout != 30*time.Second || !cfg.TUI || !cfg.NoColor {
		t.Errorf("unexpected options: %+v", cfg)
	}
}

func TestParseRunnerConfig_EnvOverrides(t *testing.T) {
	clearRunnerEnv(t)
	t.Setenv(RunnerEnvPrefix+"DIR", "env-dir")
	t.Setenv(RunnerEnvPrefix+"LANG", "Python,R")
	t.Setenv(RunnerEnvPrefix+"VIEW", "yes")
	t.Setenv(RunnerEnvPrefix+"TIMEOUT", "1m")

	cfg, err := ParseRunnerConfig("fibbench-runner", []string{"-dir", "flag-dir"}, io.Discard, testLanguages)
	if err != nil {
		t.Fatalf("ParseRunnerConfig returned error: %v", err)
	}
	if cfg.Dir != "flag-dir" {
		t.Errorf("Dir = %q, explicit flag should win over environment", cfg.Dir)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[1] != "R" {
		t.Errorf("Languages = %q, want values from environment", cfg.Languages)
	}
	if !cfg.ViewOnly || cfg.Timeout != time.Minute {
		t.Errorf("environment overrides not applied: %+v", cfg)
	}
}

func TestParseRunnerConfig_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantHelp   bool
		wantConfig bool
	}{
		{"help", []string{"-h"}, true, false},
		{"unknown flag", []string{"-n", "40"}, false, false},
		{"unknown language", []string{"-lang", "Cobol"}, false, true},
		{"non-positive timeout", []string{"-timeout", "0s"}, false, true},
		{"bad log level", []string{"-log-level", "chatty"}, false, true},
		{"positional argument", []string{"extra"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearRunnerEnv(t)

			_, err := ParseRunnerConfig("fibbench-runner", tt.args, io.Discard, testLanguages)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantHelp && !errors.Is(err, flag.ErrHelp) {
				t.Errorf("expected flag.ErrHelp, got %v", err)
			}
			var configErr apperrors.ConfigError
			if tt.wantConfig != errors.As(err, &configErr) {
				t.Errorf("ConfigError = %v, want %v (err: %v)", !tt.wantConfig, tt.wantConfig, err)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
		}
	}
}
