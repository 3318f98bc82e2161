// Package output provides structured, leveled CLI logging (splog) and the
// color palette used to decorate commit ids and branch names.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler prints just the message, no timestamp or level prefix -
// the console-facing half of Splog.
type simpleHandler struct {
	writer io.Writer
	level  slog.Level
	quiet  *bool
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *simpleHandler) WithGroup(_ string) slog.Handler      { return h }

// multiHandler fans a record out to every handler that is enabled for it,
// so console output and the rotating file log can run side by side.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: out}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: out}
}

// Splog is rit's CLI output sink: leveled console printing plus an
// optional rotating file log, matching the CLI's -v/-q counting
// verbosity scheme.
type Splog struct {
	logger    *slog.Logger
	writer    *os.File
	logWriter io.WriteCloser
	quiet     bool
}

// VerbosityToLevel maps the CLI's -v/-q counter (positive = more verbose,
// negative = quieter) onto a slog.Level. 0 is Info, matching rit.py's
// default.
func VerbosityToLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= -1:
		return slog.LevelWarn
	case verbosity == 0:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// NewSplog creates a console-only Splog at the given verbosity.
func NewSplog(verbosity int) *Splog {
	s, _ := NewSplogWithFile(verbosity, "")
	return s
}

// NewSplogWithFile creates a Splog that also tees everything to a
// lumberjack-rotated log file, independent of the console verbosity
// level, splitting interactive output from persisted output.
func NewSplogWithFile(verbosity int, logFilePath string) (*Splog, error) {
	writer := os.Stdout
	s := &Splog{writer: writer}

	console := &simpleHandler{writer: writer, level: VerbosityToLevel(verbosity), quiet: &s.quiet}
	handlers := []slog.Handler{console}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   false,
		}
		s.logWriter = lj
		fileHandler := slog.NewTextHandler(lj, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})
		handlers = append(handlers, fileHandler)
	}

	s.logger = slog.New(&multiHandler{handlers: handlers})
	return s, nil
}

// SetQuiet suppresses console output without disabling file logging.
func (s *Splog) SetQuiet(quiet bool) { s.quiet = quiet }

func (s *Splog) log(level slog.Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info-level line.
func (s *Splog) Info(format string, args ...interface{}) { s.log(slog.LevelInfo, format, args) }

// Warn writes a warning line.
func (s *Splog) Warn(format string, args ...interface{}) {
	s.log(slog.LevelWarn, "warning: "+format, args)
}

// Error writes an error line.
func (s *Splog) Error(format string, args ...interface{}) {
	s.log(slog.LevelError, "error: "+format, args)
}

// Debug writes a debug-level line, shown only at -v or higher.
func (s *Splog) Debug(format string, args ...interface{}) { s.log(slog.LevelDebug, format, args) }

// Page writes raw content with no level decoration (used for the
// branch, log, status, prune, and query listings).
func (s *Splog) Page(content string) {
	if s.quiet {
		return
	}
	_, _ = fmt.Fprint(s.writer, content)
}

// Close flushes and closes the rotating log file, if one is open.
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
