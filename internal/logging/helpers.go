package logging

import (
	"context"
	"log/slog"
)

// Debug, Info, Warn and Error log through the logger stored on ctx, falling
// back to fallback. They do nothing when neither is set.

func Debug(ctx context.Context, fallback *slog.Logger, msg string, args ...any) {
	logAt(ctx, fallback, slog.LevelDebug, msg, args)
}

func Info(ctx context.Context, fallback *slog.Logger, msg string, args ...any) {
	logAt(ctx, fallback, slog.LevelInfo, msg, args)
}

func Warn(ctx context.Context, fallback *slog.Logger, msg string, args ...any) {
	logAt(ctx, fallback, slog.LevelWarn, msg, args)
}

// Error appends err under the "error" key when it is non-nil.
func Error(ctx context.Context, fallback *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logAt(ctx, fallback, slog.LevelError, msg, args)
}

func logAt(ctx context.Context, fallback *slog.Logger, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, args...)
}
