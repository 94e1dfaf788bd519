// Package logging builds the diagnostic logger used by the CLI and tests.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel   = "SRCON_LOG_LEVEL"
	EnvLogNoColor = "SRCON_LOG_NOCOLOR"
)

// Profile selects the default level and layout of a logger.
type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Options describe a logger before env overrides are applied.
type Options struct {
	Profile Profile
	Verbose bool
	NoColor bool
	Output  io.Writer
}

// New returns a console logger. Runtime loggers log at info, or debug when
// Verbose is set; test loggers log at debug without timestamps.
// SRCON_LOG_LEVEL and SRCON_LOG_NOCOLOR override the options.
func New(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case opts.Profile == ProfileTest, opts.Verbose:
		level = zerolog.DebugLevel
	}
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		level = lvl
	}

	noColor := opts.NoColor
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		noColor = v
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: time.DateTime,
	}
	if opts.Profile == ProfileTest {
		writer.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
