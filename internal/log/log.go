// Package log provides structured key/value logging for the scanner,
// backed by zerolog.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	logger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// SetLevel sets the global log level. Unknown levels are ignored.
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return
	}
	logger = logger.Level(parsed)
}

// Debug logs a debug message with alternating key/value pairs
func Debug(msg string, args ...any) {
	emit(logger.Debug(), msg, args)
}

// Info logs an info message with alternating key/value pairs
func Info(msg string, args ...any) {
	emit(logger.Info(), msg, args)
}

// Warn logs a warning message with alternating key/value pairs
func Warn(msg string, args ...any) {
	emit(logger.Warn(), msg, args)
}

// Error logs an error message with alternating key/value pairs
func Error(msg string, args ...any) {
	emit(logger.Error(), msg, args)
}

// emit attaches the key/value pairs to the event and writes it.
// A trailing value without a key and non-string keys are dropped.
func emit(event *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}
