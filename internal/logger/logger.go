// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the global logger. Init replaces it.
var Logger = log.Logger

// Config selects the level, the output format ("json" or "pretty") and the
// timestamp layout.
type Config struct {
	Level      string
	Format     string
	TimeFormat string
	Output     io.Writer
}

// Init builds the global logger from config. An unknown level falls back to info.
func Init(config Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	output := config.Output
	if output == nil {
		output = os.Stdout
	}
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: zerolog.TimeFieldFormat}
	}

	Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Logger = Logger
	return Logger
}

// Fatal starts a fatal event; the process exits after it is written.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}
