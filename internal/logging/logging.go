// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init initializes the global logger: human-readable console output on
// stderr, plus an optional rotating JSON file sink for scheduled runs.
// Report output itself never goes through the logger, so stdout stays
// clean for csv and json consumers.
func Init(verbose bool, logFile string) {
	// 1. Determine log level
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	// 2. Setup Stderr Writer (Console)
	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	// 3. Setup optional File Writer (Rotating)
	var sink io.Writer = consoleWriter
	if logFile != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    16, // megabytes
			MaxBackups: 8,
			MaxAge:     90, // days
			Compress:   true,
		}
		sink = zerolog.MultiLevelWriter(consoleWriter, fileWriter)
	}

	// 4. Set Global Logger
	log.Logger = zerolog.New(sink).
		With().
		Timestamp().
		Logger()
}
