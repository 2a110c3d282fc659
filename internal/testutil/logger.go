// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"io"

	"github.com/dtroode/texcode-accounts/internal/logger"
)

// MakeNoopLogger returns a logger that discards every record.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}

// MakeBufferLogger returns a debug-level logger writing text records into the
// returned buffer.
func MakeBufferLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logger.NewWithWriter(&buf, -4), &buf
}
