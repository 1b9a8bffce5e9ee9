// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// BoardLogger provides structured logging for board operations.
type BoardLogger struct {
	logger *Logger
}

// NewBoardLogger creates a new BoardLogger.
func NewBoardLogger() *BoardLogger {
	return &BoardLogger{logger: GlobalLogger}
}

// LogOp logs a completed board operation with its outcome.
func (l *BoardLogger) LogOp(ctx context.Context, operation string, caller string, fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("caller", caller),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.logger.InfoContext(ctx, "board operation", attrs...)
}

// LogRejected logs a board operation rejected with a sentinel outcome.
func (l *BoardLogger) LogRejected(ctx context.Context, operation string, caller string, outcome string) {
	l.logger.InfoContext(ctx, "board operation rejected",
		slog.String("operation", operation),
		slog.String("caller", caller),
		slog.String("outcome", outcome),
	)
}

// LogError logs a store or serialization failure surfaced by the board.
func (l *BoardLogger) LogError(ctx context.Context, operation string, err error) {
	l.logger.ErrorContext(ctx, "board operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
