// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the FIBBENCH_RUNNER_ prefix) to the CLI
// flag name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*RunnerConfig, string)
}

// runnerEnvOverrides is the declarative table of all harness environment
// variable overrides.
var runnerEnvOverrides = []envOverride{
	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *RunnerConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"DIR", []string{"dir"}, func(c *RunnerConfig, v string) {
		c.Dir = v
	}},
	{"RESULTS", []string{"results"}, func(c *RunnerConfig, v string) {
		c.ResultsFile = v
	}},
	{"LANG", []string{"lang"}, func(c *RunnerConfig, v string) {
		c.Languages = splitList(v)
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *RunnerConfig, v string) {
		c.LogLevel = strings.ToLower(v)
	}},

	// Boolean overrides
	{"VIEW", []string{"view"}, func(c *RunnerConfig, v string) {
		c.ViewOnly = parseBoolEnv(v, c.ViewOnly)
	}},
	{"TUI", []string{"tui"}, func(c *RunnerConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *RunnerConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyRunnerEnvOverrides applies environment variable values to the
// configuration for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with FIBBENCH_RUNNER_):
//   - DIR, RESULTS, LANG, TIMEOUT, VIEW, TUI, NO_COLOR, LOG_LEVEL
func applyRunnerEnvOverrides(config *RunnerConfig, fs *flag.FlagSet) {
	for _, o := range runnerEnvOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(RunnerEnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
