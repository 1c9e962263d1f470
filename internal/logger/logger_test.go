package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// newRecord builds a record with a fixed timestamp.
func newRecord(l slog.Level, msg string, args ...any) slog.Record {
	ts := time.Date(2024, 1, 15, 14, 30, 45, 123_000_000, time.UTC)
	r := slog.NewRecord(ts, l, msg, 0)
	r.Add(args...)

	return r
}

// TestHandlerFormat verifies the line layout.
func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf)

	if err := h.Handle(context.Background(), newRecord(slog.LevelInfo, "committee computed", "size", 3)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	want := "2024-01-15 14:30:45.123 [INF] committee computed size=3\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

// TestHandlerWithAttrs verifies handler attributes precede record attributes.
func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf).WithAttrs([]slog.Attr{slog.String("context", "epoch")}).WithGroup("round")

	if err := h.Handle(context.Background(), newRecord(slog.LevelWarn, "slow", "seq", 7)); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasSuffix(buf.String(), "[WRN] slow context=epoch round.seq=7\n") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

// TestHandlerLevel verifies records below the configured level are disabled.
func TestHandlerLevel(t *testing.T) {
	defer SetLevel(slog.LevelInfo)

	h := NewHandler(&bytes.Buffer{})

	SetLevel(slog.LevelInfo)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at info level")
	}

	SetLevel(slog.LevelDebug)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled at debug level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.name)
		if err != nil {
			t.Fatalf("ParseLevel(%q) failed: %v", tc.name, err)
		}
		if got != tc.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.name, got, tc.expected)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

// TestHelpersUseDefaultLogger verifies the package helpers write through the default logger.
func TestHelpersUseDefaultLogger(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(NewHandler(&buf)))

	With("roster", 6).Info("schedule computed", "quorum", 4)
	Error("command failed", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	if !strings.HasSuffix(lines[0], "[INF] schedule computed roster=6 quorum=4") {
		t.Errorf("unexpected line %q", lines[0])
	}

	if !strings.HasSuffix(lines[1], "[ERR] command failed error=boom") {
		t.Errorf("unexpected line %q", lines[1])
	}
}
