// Package logging builds zerolog loggers for the collector.
//
// Loggers are constructed explicitly and handed to each component; nothing in
// this package touches the zerolog global logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output instead of JSON lines.
	Pretty bool

	// Output is the writer to output logs to (default: os.Stdout).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelDebug,
		Pretty: true,
		Output: os.Stdout,
	}
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Component returns a child of logger tagged with the component name.
func Component(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// Nop returns a disabled logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Log Level Guidelines:
//
// Debug: per-page detail
//   - start offset of each page
//   - HTTP status code and document count
//   - pause duration between pages
//   - cache hit/miss
//
// Info: progress
//   - genre transitions (processing, completed)
//   - requests issued (URL and params)
//
// Warn: degraded but continuing
//   - cache errors (fall back to network)
//
// Error: a genre stopped early or the run failed
//   - transport, HTTP status and parse errors
//   - persistence errors
//
// Context Fields:
//   - component: emitting component
//   - genre: genre term being processed
//   - start: page offset
//   - status_code: HTTP status code
//   - error_kind: transport, http_status, parse
//   - pid: record identifier
//   - pause: pause duration
