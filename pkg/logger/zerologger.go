package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ZeroLogger struct {
	logger zerolog.Logger
}

func NewZeroLog(env string) *ZeroLogger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *ZeroLogger {
	level := zerolog.DebugLevel
	if env == "production" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &ZeroLogger{logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *ZeroLogger {
	return &ZeroLogger{logger: zerolog.Nop()}
}

// helper to convert our abstraction []Field -> zerolog fields
func convert(fields []Field) []any {
	items := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		items = append(items, f.Key, f.Value)
	}
	return items
}

func (l *ZeroLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.logger.Debug().Ctx(ctx).Fields(convert(fields)).Msg(msg)
}

func (l *ZeroLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.logger.Info().Ctx(ctx).Fields(convert(fields)).Msg(msg)
}

func (l *ZeroLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.logger.Warn().Ctx(ctx).Fields(convert(fields)).Msg(msg)
}

func (l *ZeroLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.logger.Error().Ctx(ctx).Fields(convert(fields)).Msg(msg)
}

func (l *ZeroLogger) With(fields ...Field) Logger {
	return &ZeroLogger{logger: l.logger.With().Fields(convert(fields)).Logger()}
}
