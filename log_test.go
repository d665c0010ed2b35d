package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		level     log.Level
	}{
		{3, log.DebugLevel},
		{1, log.DebugLevel},
		{0, log.InfoLevel},
		{-1, log.WarnLevel},
		{-2, log.ErrorLevel},
		{-5, log.FatalLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, NewLogger(io.Discard, tt.verbosity).GetLevel())
	}
}
