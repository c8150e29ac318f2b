package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DebugFile is the log written next to the working directory when --debug is set.
const DebugFile = "mitplan-debug.log"

// Options selects where and how much the process logs.
type Options struct {
	// Level is a zerolog level name. Empty means warn.
	Level string
	// File, when set, receives JSON lines in addition to Console.
	File string
	// Console receives human-readable output. Nil disables it.
	Console io.Writer
}

// Setup configures zerolog for the process and returns the root logger.
// The returned closer releases the log file, if one was opened.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen})
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("opening log file: %w", err)
		}
		writers = append(writers, f)
		closer = f
	}

	logger := New(level, writers...)
	log.Logger = logger
	return logger, closer, nil
}

// New builds a timestamped logger over the given writers.
// With no writers the logger discards everything.
func New(level zerolog.Level, writers ...io.Writer) zerolog.Logger {
	switch len(writers) {
	case 0:
		return zerolog.Nop()
	case 1:
		return zerolog.New(writers[0]).With().Timestamp().Logger().Level(level)
	default:
		return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level)
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
