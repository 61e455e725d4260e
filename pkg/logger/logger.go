package logger

import "context"

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logger used across the module.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	With(fields ...Field) Logger
}
