package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger maps the signed verbosity count onto a leveled logger: every -v
// lowers the threshold by one step and every -q raises it.
func NewLogger(w io.Writer, verbosity int) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	switch {
	case verbosity >= 1:
		logger.SetLevel(log.DebugLevel)
	case verbosity == 0:
		logger.SetLevel(log.InfoLevel)
	case verbosity == -1:
		logger.SetLevel(log.WarnLevel)
	case verbosity == -2:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.FatalLevel)
	}
	return logger
}
