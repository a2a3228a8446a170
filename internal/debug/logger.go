package debug

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	writer io.Writer = io.Discard
	logger           = zerolog.Nop()
)

// SetOutput sets the debug output destination and level.
// An empty level means debug.
func SetOutput(w io.Writer, level string) {
	writer = w
	if w == io.Discard {
		logger = zerolog.Nop()
		return
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.DebugLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the structured debug logger
func Logger() *zerolog.Logger {
	return &logger
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return writer != io.Discard
}
