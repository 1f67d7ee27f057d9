// Package logging configures the process-wide zerolog logger.
//
// All status output goes to stderr so stdout stays free for command
// output (tables, JSON, the final provisioning report). The console
// format renders full upper-case severity tags (INFO, WARNING, ERROR)
// so the stream reads cleanly in a terminal session on the host.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process logger. Commands derive component loggers from it
// via WithComponent.
var Logger zerolog.Logger

// Format selects the log output encoding.
type Format string

const (
	// FormatConsole renders human-readable lines with severity tags.
	FormatConsole Format = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	Level  string    // debug, info, warning, error
	Format Format    // console or json
	Output io.Writer // defaults to os.Stderr
}

// Init initializes the process logger from the given configuration.
// Unrecognized levels fall back to info.
func Init(cfg Config) {
	var level zerolog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "", "info":
		level = zerolog.InfoLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Format == FormatJSON {
		Logger = zerolog.New(output).With().Timestamp().Logger()
		return
	}

	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:         output,
		TimeFormat:  time.RFC3339,
		FormatLevel: consoleLevel,
	}).With().Timestamp().Logger()
}

// consoleLevel renders full severity words instead of zerolog's
// three-letter console defaults.
func consoleLevel(i interface{}) string {
	level, ok := i.(string)
	if !ok {
		return "???"
	}
	if level == "warn" {
		return "WARNING"
	}
	return strings.ToUpper(level)
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
