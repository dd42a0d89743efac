package bmset

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bmset-specific context.
// This provides structured logging with consistent field names.
//
// The Set itself never logs; Logger is for programs driving sets.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSet adds the bounds and mode of s to the logger.
func (l *Logger) WithSet(s *Set) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"min", s.Min(),
			"max", s.Max(),
			"mode", s.Mode().String(),
		),
	}
}

// WithWorker adds a worker field to the logger.
func (l *Logger) WithWorker(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("worker", id),
	}
}

// LogCreate logs a set construction.
func (l *Logger) LogCreate(ctx context.Context, lo, hi int64, s *Set, err error) {
	if err != nil {
		l.ErrorContext(ctx, "create failed",
			"min", lo,
			"max", hi,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "set created",
		"min", lo,
		"max", hi,
		"mode", s.Mode().String(),
		"bytes", s.SizeInBytes(),
	)
}

// LogOperation logs a single operation and its outcome.
func (l *Logger) LogOperation(ctx context.Context, op Op, value int64, member bool, err error) {
	status := StatusOf(err)
	switch status {
	case StatusSuccess:
		l.DebugContext(ctx, "operation completed",
			"op", op.String(),
			"value", value,
			"was_member", member,
		)
	case StatusValueRange:
		l.WarnContext(ctx, "value out of range",
			"op", op.String(),
			"value", value,
			"error", err,
		)
	default:
		l.ErrorContext(ctx, "operation failed",
			"op", op.String(),
			"value", value,
			"status", status.String(),
			"member_valid", MemberValid(err),
			"error", err,
		)
	}
}

// LogClose logs a set teardown.
func (l *Logger) LogClose(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "close failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "set closed")
}
