// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the optional log file.
const (
	maxFileSizeMB  = 10
	maxFileBackups = 3
	maxFileAgeDays = 28
)

// Options configures New.
type Options struct {
	Level slog.Level
	// File, when set, receives a rotated copy of everything written to Output.
	File string
	// Output defaults to os.Stdout.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a JSON logger and a closer that releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxFileBackups,
			MaxAge:     maxFileAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotated)
		closer = rotated
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: opts.Level,
	}))
	return logger, closer
}
