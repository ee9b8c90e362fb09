package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one CLI invocation across console and file output.
	FieldRunID = "run_id"
	// FieldKey is the store key of the stream-details record being handled.
	FieldKey = "key"
	// FieldPath is a file path read or written by the operation.
	FieldPath      = "path"
	FieldError     = "error"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
)

type contextKey int

const (
	keyRecord contextKey = iota
	keyPath
)

// WithRecordKey attaches a store key to ctx.
func WithRecordKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, keyRecord, key)
}

// WithPath attaches the file path an operation works on to ctx.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyPath, path)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if key, ok := ctx.Value(keyRecord).(string); ok && key != "" {
		fields = append(fields, slog.String(FieldKey, key))
	}
	if path, ok := ctx.Value(keyPath).(string); ok && path != "" {
		fields = append(fields, slog.String(FieldPath, path))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
