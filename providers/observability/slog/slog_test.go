package slog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/bravekit/providers/observability"
)

func newBufferObserver() (*Observer, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger), &buf
}

func TestObserverLogging(t *testing.T) {
	observer, buf := newBufferObserver()

	observer.Info(context.Background(), "searching", observability.String("query", "golang"))

	out := buf.String()
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("output missing INFO level: %s", out)
	}
	if !strings.Contains(out, "searching") || !strings.Contains(out, "query=golang") {
		t.Errorf("output missing message or attribute: %s", out)
	}
}

func TestObserverLogLevels(t *testing.T) {
	observer, buf := newBufferObserver()
	ctx := context.Background()

	observer.Debug(ctx, "debug msg")
	observer.Warn(ctx, "warn msg")
	observer.Error(ctx, "error msg")

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "level=WARN", "level=ERROR"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSpanLifecycle(t *testing.T) {
	observer, buf := newBufferObserver()

	_, span := observer.StartSpan(context.Background(), "tool.execution",
		observability.String("tool.name", "brave_search"))
	span.AddEvent("search.retry", observability.Int("attempt", 1))
	span.SetStatus(observability.StatusOK, "")
	span.End()

	out := buf.String()
	if !strings.Contains(out, "span=tool.execution") {
		t.Errorf("output missing span name: %s", out)
	}
	if !strings.Contains(out, "event=span.start") {
		t.Errorf("output missing start event: %s", out)
	}
	if !strings.Contains(out, "event=search.retry") {
		t.Errorf("output missing custom event: %s", out)
	}
	if !strings.Contains(out, "event=span.end") || !strings.Contains(out, "status=ok") {
		t.Errorf("output missing end event with status: %s", out)
	}
}

func TestSpanRecordError(t *testing.T) {
	observer, buf := newBufferObserver()

	_, span := observer.StartSpan(context.Background(), "search")
	span.RecordError(errors.New("rate limited"))
	span.RecordError(nil) // no-op
	span.End()

	out := buf.String()
	if !strings.Contains(out, "rate limited") {
		t.Errorf("output missing recorded error: %s", out)
	}
	if strings.Count(out, "event=error") != 1 {
		t.Errorf("nil error should not be logged: %s", out)
	}
}

func TestCounterAccumulates(t *testing.T) {
	observer, buf := newBufferObserver()
	ctx := context.Background()

	counter := observer.Counter("brave_search.queries")
	counter.Add(ctx, 1)
	counter.Add(ctx, 2)

	out := buf.String()
	if !strings.Contains(out, "metric=brave_search.queries") {
		t.Errorf("output missing metric name: %s", out)
	}
	if !strings.Contains(out, "value=3") {
		t.Errorf("counter did not accumulate to 3: %s", out)
	}

	// Same name must return the same underlying counter.
	if observer.Counter("brave_search.queries") != counter {
		t.Error("Counter() returned a different instance for the same name")
	}
}

func TestHistogramRecords(t *testing.T) {
	observer, buf := newBufferObserver()

	observer.Histogram("search.duration").Record(context.Background(), 812.5)

	out := buf.String()
	if !strings.Contains(out, "metric=search.duration") || !strings.Contains(out, "value=812.5") {
		t.Errorf("output missing histogram sample: %s", out)
	}
}

func TestNewDefaultsToSlogDefault(t *testing.T) {
	observer := New(nil)
	if observer.logger == nil {
		t.Fatal("New(nil) left the logger unset")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("BRAVEKIT_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	if got := GetLogLevelFromEnv(); got != slog.LevelInfo {
		t.Errorf("default level = %v, want INFO", got)
	}

	t.Setenv("LOG_LEVEL", "ERROR")
	if got := GetLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("LOG_LEVEL fallback = %v, want ERROR", got)
	}

	t.Setenv("BRAVEKIT_LOG_LEVEL", "DEBUG")
	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("BRAVEKIT_LOG_LEVEL = %v, want DEBUG", got)
	}
}
