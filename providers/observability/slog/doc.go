// Package slog implements observability.Provider on top of Go's standard
// library log/slog. Spans, metrics, and structured log records are all
// emitted as slog records, making it a zero-dependency default observer for
// development and for libraries that must not force a telemetry backend on
// their host application.
//
// Create an observer with [New]; pass nil to use slog.Default(). The log
// level can be configured via the BRAVEKIT_LOG_LEVEL or LOG_LEVEL
// environment variables (see [GetLogLevelFromEnv]).
package slog
