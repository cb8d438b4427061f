package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("unexpected level for %q: got=%s want=%s", raw, got, want)
		}
	}
}

func TestNew_WritesServiceAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "football-etl", Output: &buf})

	logger.Debug("dropped", "season", "2022_2023")
	logger.Warn("merge dropped rows", "category", "defense", "dropped", 2, "error", errors.New("boom"))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("unexpected line count: got=%d want=1", len(lines))
	}
	entry := lines[0]
	if entry["service"] != "football-etl" {
		t.Fatalf("unexpected service field: %v", entry["service"])
	}
	if entry["msg"] != "merge dropped rows" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["category"] != "defense" {
		t.Fatalf("unexpected category field: %v", entry["category"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if entry["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "season built", "season", "2023_2024")
	logger.InfoContext(context.Background(), "no span")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("unexpected line count: got=%d want=2", len(lines))
	}
	if lines[0]["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id: %v", lines[0]["trace_id"])
	}
	if lines[0]["span_id"] != spanID.String() {
		t.Fatalf("unexpected span_id: %v", lines[0]["span_id"])
	}
	if _, ok := lines[1]["trace_id"]; ok {
		t.Fatalf("expected no trace_id without a span")
	}
}

func TestLogger_WithOddArgs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).With("run", 7)
	logger.Info("odd", "dangling")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("unexpected line count: got=%d want=1", len(lines))
	}
	if lines[0]["run"] != float64(7) {
		t.Fatalf("unexpected run field: %v", lines[0]["run"])
	}
	if v, ok := lines[0]["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with null value, got %v (present=%v)", v, ok)
	}
}

func TestDefault_FallsBackToNop(t *testing.T) {
	var nilLogger *Logger
	nilLogger.Info("no panic")

	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected default logger")
	}
}
