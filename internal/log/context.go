package log

import (
	"context"
	"log/slog"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// WithContext stores the logger in ctx
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// FromContext extracts a logger from the context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides domain-specific log events on top of Logger
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogDatasetLoaded logs a completed dataset load
func (sl *StructuredLogger) LogDatasetLoaded(ctx context.Context, backend string, sources, records int, durationMs int64) {
	fields := NewFields().
		WithOperation(OpLoad).
		WithComponent(ComponentDataset).
		WithDuration(durationMs)
	fields[FieldBackend] = backend
	fields[FieldSources] = sources
	fields[FieldRecords] = records

	sl.logger.Logger.InfoContext(ctx, "Dataset loaded", fields.ToSlice()...)
}

// LogSearch logs a completed search with the number of matches per sub-query
func (sl *StructuredLogger) LogSearch(ctx context.Context, query string, matched []int, resultSetID string) {
	fields := NewFields().
		WithQuery(query, len(matched)).
		WithOperation(OpSearch).
		WithComponent(ComponentSession)
	fields[FieldMatched] = matched
	fields[FieldResultSetID] = resultSetID

	sl.logger.Logger.InfoContext(ctx, "Search results shown", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.Logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
