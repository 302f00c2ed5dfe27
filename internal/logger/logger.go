package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// LogFilePath is where the viewer mirrors its log, relative to the working directory.
const LogFilePath = "logs/shelf.txt"

// New returns a logger writing to w at the given level with short wall-clock timestamps.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// NewWithFile returns a logger writing to w and appending to LogFilePath. The returned close
// func releases the file. If the log file cannot be opened the logger writes to w only.
func NewWithFile(w io.Writer, level log.Level) (*log.Logger, func() error) {
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err != nil {
		return New(w, level), func() error { return nil }
	}
	f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return New(w, level), func() error { return nil }
	}
	return New(io.MultiWriter(w, f), level), f.Close
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}
