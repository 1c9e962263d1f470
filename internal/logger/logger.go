package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once

	// level is the minimum level written by handlers created with NewHandler.
	level = new(slog.LevelVar)
)

// Init initializes the global logger writing to stderr.
// Stdout is left to command output.
func Init() {
	once.Do(func() {
		handler := NewHandler(os.Stderr)
		defaultLogger = slog.New(handler)
		slog.SetDefault(defaultLogger)
	})
}

// SetLevel sets the minimum level of the global logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("parse log level %q:\n%w", name, err)
	}

	return l, nil
}

// Handler is a custom slog handler with millisecond timestamps.
type Handler struct {
	out   io.Writer
	mu    *sync.Mutex
	attrs []slog.Attr
	group string
}

// NewHandler creates a new handler writing to the given writer.
func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out, mu: &sync.Mutex{}}
}

// Enabled reports whether the level reaches the configured minimum.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= level.Level()
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	// Format: 2024-01-15 14:30:45.123 [INF] message key=value
	ts := r.Time.Format("2006-01-02 15:04:05.000")

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", ts, levelString(r.Level), r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", h.qualify(a.Key), a.Value)
		return true
	})

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.out, b.String())
	return err
}

// qualify prefixes key with the handler group.
func (h *Handler) qualify(key string) string {
	if h.group == "" {
		return key
	}

	return h.group + "." + key
}

// WithAttrs returns a new handler that adds attrs to every record.
// Keys are qualified with the group active at the time of the call.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)

	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}

	return &clone
}

// WithGroup returns a new handler that prefixes later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name

	return &clone
}

// levelString returns a short string for the log level.
func levelString(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "DBG"
	case slog.LevelInfo:
		return "INF"
	case slog.LevelWarn:
		return "WRN"
	case slog.LevelError:
		return "ERR"
	default:
		return "???"
	}
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}

// Timed returns elapsed time since start for logging duration.
func Timed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
