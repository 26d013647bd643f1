package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger zerolog.Logger
	once         sync.Once
)

// GetLogger returns the process-wide logger. Before New is called it logs to
// a console writer at info level, so init-time code can always log.
func GetLogger() zerolog.Logger {
	once.Do(func() {
		globalLogger = consoleLogger().Level(zerolog.InfoLevel)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	return globalLogger
}

// New reconfigures the global logger from the configured level and format
// ("json" or "console") and returns it.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var base zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		base = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		base = consoleLogger()
	default:
		return zerolog.Logger{}, fmt.Errorf("unsupported log format %q", format)
	}

	zerolog.SetGlobalLevel(lvl)
	globalLogger = base.Level(lvl)
	return globalLogger, nil
}

// ForComponent returns the global logger tagged with a component name.
func ForComponent(name string) zerolog.Logger {
	return GetLogger().With().Str("component", name).Logger()
}

func consoleLogger() zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).With().Timestamp().Logger()
}
