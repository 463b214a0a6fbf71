// Package logging implements the application Logger port on log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/infrastructure/config"
)

// SlogLogger adapts slog to common.Logger
type SlogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

// New builds a logger from the logging section of the configuration
func New(cfg config.LoggingConfig) (*SlogLogger, error) {
	var out io.Writer
	var closer io.Closer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "", "stderr":
		out = os.Stderr
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	l, err := NewWithWriter(out, cfg.Level, cfg.Format)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	l.closer = closer
	return l, nil
}

// NewWithWriter builds a logger writing to w
func NewWithWriter(w io.Writer, level, format string) (*SlogLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return &SlogLogger{logger: slog.New(handler)}, nil
}

// ParseLevel maps configuration and port level names to slog levels
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// Log implements common.Logger. Metadata keys are emitted in sorted order.
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}
	l.logger.LogAttrs(context.Background(), lvl, message, attrs...)
}

// With returns a logger that adds metadata to every entry
func (l *SlogLogger) With(metadata map[string]interface{}) *SlogLogger {
	args := make([]any, 0, 2*len(metadata))
	for k, v := range metadata {
		args = append(args, k, v)
	}
	return &SlogLogger{logger: l.logger.With(args...)}
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
