// Package logging builds the process logger. The terminal UI owns stdout, so
// by default logs go to a rotated file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string
	// File is the log path. Empty means DefaultFile().
	File string
	// Console writes human-readable logs to stderr instead of the file.
	Console bool
}

// DefaultFile is $XDG_STATE_HOME/ragdesk/ragdesk.log, falling back to
// ~/.local/state.
func DefaultFile() string {
	state := strings.TrimSpace(os.Getenv("XDG_STATE_HOME"))
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return filepath.Join(os.TempDir(), "ragdesk.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "ragdesk", "ragdesk.log")
}

// Setup configures the global zerolog logger and returns it along with the
// closer of its sink.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var (
		sink   io.Writer
		closer io.Closer = nopCloser{}
	)
	if opts.Console {
		sink = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = "15:04:05"
		})
	} else {
		path := opts.File
		if strings.TrimSpace(path) == "" {
			path = DefaultFile()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Wrapf(err, "create log directory for %s", path)
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}
		sink = rotator
		closer = rotator
	}

	logger := zerolog.New(sink).
		Level(level).
		With().
		Timestamp().
		Str("app", "ragdesk").
		Logger()
	log.Logger = logger
	return logger, closer, nil
}

func ParseLevel(raw string) (zerolog.Level, error) {
	clean := strings.ToLower(strings.TrimSpace(raw))
	if clean == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(clean)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "invalid log level %q", raw)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
