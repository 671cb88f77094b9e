package rankfuse

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with rankfuse-specific helpers.
// This provides structured logging with consistent field names.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithMethod adds a retrieval method field to the logger.
func (l *Logger) WithMethod(method string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", method),
	}
}

// WithTopK adds a top_k field to the logger.
func (l *Logger) WithTopK(topK int) *Logger {
	return &Logger{
		Logger: l.Logger.With("top_k", topK),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRetrieve logs a retrieve operation.
func (l *Logger) LogRetrieve(ctx context.Context, method string, topK, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "retrieve failed",
			"method", method,
			"top_k", topK,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "retrieve completed",
			"method", method,
			"top_k", topK,
			"results", results,
		)
	}
}

// LogIndex logs a lexical index rebuild.
func (l *Logger) LogIndex(count int, err error) {
	if err != nil {
		l.Error("index rebuild failed",
			"documents", count,
			"error", err,
		)
	} else {
		l.Debug("index rebuilt",
			"documents", count,
		)
	}
}
