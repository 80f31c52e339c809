package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

// Init initializes the global logger
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout

	if isDevelopment {
		// Pretty print for development
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	Logger = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// Info logs at info level
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error logs at error level
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn logs at warn level
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Fatal logs at fatal level and exits
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}
