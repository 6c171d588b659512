// Package logging sets up the file-backed zerolog logger. The interactive
// session owns the terminal, so log output never goes to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFileName = "a3mm/a3mm.log"

func init() {
	log.Logger = zerolog.Nop()
}

// Setup points the global logger at the state log file and returns the file
// so the caller can close it. verbose lowers the level to debug.
func Setup(verbose bool) (io.Closer, error) {
	path, err := LogPath()
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	SetupWriter(file, verbose)
	log.Debug().Str("logFile", path).Msg("Logger initialized")
	return file, nil
}

// SetupWriter points the global logger at w
func SetupWriter(w io.Writer, verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	if verbose {
		logger = logger.With().Caller().Logger()
	}
	log.Logger = logger
}

// LogPath returns the log file location, creating its directory
func LogPath() (string, error) {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		return "", fmt.Errorf("resolving log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return path, nil
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
