package logger

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// SlogLogger implements ports.Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// Options selects the slog handler.
type Options struct {
	Level  string // debug|info|warn|error
	Format string // text|json
}

// New creates a SlogLogger writing to w.
func New(w io.Writer, opts Options) *SlogLogger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return &SlogLogger{logger: slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *SlogLogger {
	return New(io.Discard, Options{Level: "error"})
}

// ParseLevel maps a config string onto a slog level; unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog exposes the underlying logger for adapters that speak slog directly.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	list := attrs(fields)
	if err != nil {
		list = append(list, slog.String("error", err.Error()))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, list...)
}

// attrs sorts keys so output is stable.
func attrs(fields map[string]interface{}) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}
