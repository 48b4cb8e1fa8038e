// Package logging builds the charm logger used for diagnostics. Settings come
// from GBDIS_LOG_* environment variables.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Settings configure a logger.
type Settings struct {
	Level  log.Level
	Prefix string
	Format log.Formatter
	// File, when set, receives the log instead of stderr.
	File string
}

// SettingsFromEnv reads GBDIS_LOG_LEVEL (debug|info|warn|error),
// GBDIS_LOG_PREFIX (default "gbdis "), GBDIS_LOG_FORMAT (text|json|logfmt)
// and GBDIS_LOG_TO_FILE ("1" logs to a timestamped file).
func SettingsFromEnv() Settings {
	s := Settings{
		Level:  ParseLevel(os.Getenv("GBDIS_LOG_LEVEL")),
		Prefix: os.Getenv("GBDIS_LOG_PREFIX"),
		Format: ParseFormat(os.Getenv("GBDIS_LOG_FORMAT")),
	}
	if s.Prefix == "" {
		s.Prefix = "gbdis "
	}
	if os.Getenv("GBDIS_LOG_TO_FILE") == "1" {
		s.File = fmt.Sprintf("gbdis-%s-debug.log", time.Now().Format("20060102-150405"))
	}
	return s
}

// ParseLevel maps a level name to a log level, defaulting to info.
func ParseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormat maps a format name to a formatter, defaulting to text.
func ParseFormat(s string) log.Formatter {
	switch s {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// LoggerCloser is a logger that may own its output file.
type LoggerCloser struct {
	*log.Logger
	closer io.Closer
}

// Close closes the log file, if the logger opened one.
func (lc *LoggerCloser) Close() error {
	if lc.closer == nil {
		return nil
	}
	err := lc.closer.Close()
	lc.closer = nil
	return err
}

// New returns a logger writing to w. The caller keeps ownership of w.
func New(w io.Writer, s Settings) *LoggerCloser {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           s.Level,
		Prefix:          s.Prefix,
		Formatter:       s.Format,
	})
	return &LoggerCloser{Logger: lg}
}

// NewLogger returns a logger configured from the environment. If the log
// file cannot be created it logs to stderr.
func NewLogger() *LoggerCloser {
	s := SettingsFromEnv()
	if s.File == "" {
		return New(os.Stderr, s)
	}
	f, err := os.OpenFile(s.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return New(os.Stderr, s)
	}
	lc := New(f, s)
	lc.closer = f
	return lc
}
