// Package logging builds the leveled logger shared by every command.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level. quiet forces the
// error level. An unrecognized level falls back to info with a warning.
func New(w io.Writer, level string, quiet bool, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	if quiet {
		logger.SetLevel(log.ErrorLevel)
		return logger
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info", "":
		logger.SetLevel(log.InfoLevel)
	case "warn", "warning":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
		logger.Warn("unknown log level, defaulting to info", "provided", level)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	l := log.New(io.Discard)
	l.SetLevel(log.FatalLevel)
	return l
}
