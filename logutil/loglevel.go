package logutil

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func ParseZerologLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a timestamped logger writing to w, or stderr when w is nil.
// Console output is human-readable; otherwise lines are JSON.
func New(w io.Writer, level string, console bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(ParseZerologLevel(level)).With().Timestamp().Logger()
}
