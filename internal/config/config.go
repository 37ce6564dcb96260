// Package config handles sqltext configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"sqltext/pkg/sqltext"
)

// Output formats understood by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds settings shared by the CLI and batch rewriting.
type Config struct {
	LogLevel    string       // log level: debug, info, warn, error (default "info")
	Mode        sqltext.Mode // clause-target mode (default strict)
	Output      string       // output format: text or json (default "text")
	Concurrency int          // batch rewrite workers (default 4)

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// ParseLevel maps a level name to an slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level names a log level ParseLevel knows.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ValidateOutput checks an output format name.
func ValidateOutput(output string) error {
	if output != OutputText && output != OutputJSON {
		return fmt.Errorf("unsupported output format %q: use 'text' or 'json'", output)
	}
	return nil
}

// LoadFromEnv loads configuration from SQLTEXT_* environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel: os.Getenv("SQLTEXT_LOG_LEVEL"),
		Output:   strings.ToLower(strings.TrimSpace(os.Getenv("SQLTEXT_OUTPUT"))),
	}

	if v := os.Getenv("SQLTEXT_MODE"); v != "" {
		mode, err := sqltext.ParseMode(v)
		if err != nil {
			return nil, fmt.Errorf("SQLTEXT_MODE: %w", err)
		}
		cfg.Mode = mode
	}

	if v := os.Getenv("SQLTEXT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("SQLTEXT_CONCURRENCY must be a positive integer, got %q", v)
		}
		cfg.Concurrency = n
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !ValidLevel(cfg.LogLevel) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown SQLTEXT_LOG_LEVEL %q, using info", cfg.LogLevel))
		cfg.LogLevel = "info"
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if err := ValidateOutput(cfg.Output); err != nil {
		return nil, fmt.Errorf("SQLTEXT_OUTPUT: %w", err)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
