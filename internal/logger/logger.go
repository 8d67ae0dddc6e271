package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "defipulse"

var (
	base  zerolog.Logger
	ready bool
)

// Init configures the global JSON logger from the environment.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	Configure(
		getenv("LOG_LEVEL", "info"),
		strings.EqualFold(getenv("LOG_PRETTY", "false"), "true"),
		os.Stdout,
	)
}

// Configure replaces the global logger. Every line carries the service name.
//
// Parameters:
//   - level: debug|info|warn|error; anything else means info.
//   - pretty: human-readable console output instead of JSON.
//   - w: destination writer.
func Configure(level string, pretty bool, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().
		Timestamp().
		Str("service", serviceName).
		Logger().
		Level(parseLevel(level))
	ready = true
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	if !ready {
		Init()
	}
	return &base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
