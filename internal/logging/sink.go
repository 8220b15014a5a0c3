package logging

import (
	"context"
	"log/slog"
)

// Sink is the minimal logging capability the reactor, the query log and
// the status API depend on. None of them imports log/slog directly; the
// caller injects a Sink, so the core wiring stays agnostic to the logging
// backend.
type Sink interface {
	Log(msg string, args ...any)
}

// SlogSink adapts a *slog.Logger to Sink at the given level.
type SlogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewSlogSink wraps logger, logging at slog.LevelInfo.
func NewSlogSink(logger *slog.Logger) SlogSink {
	return SlogSink{Logger: logger, Level: slog.LevelInfo}
}

func (s SlogSink) Log(msg string, args ...any) {
	s.Logger.Log(context.Background(), s.Level, msg, args...)
}
