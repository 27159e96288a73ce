package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

var log *slog.Logger

// Init initializes the global logger.
// env: "development" gives a readable text format at debug level,
// anything else gives JSON at info level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger returns the global logger
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

// ============================================
// Convenience functions
// ============================================

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs the error and terminates the process
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// ============================================
// Specialized loggers
// ============================================

// HTTPLog logs a served request with the request fields of ctx.
// 5xx responses are logged at error level, 4xx at warn.
func HTTPLog(ctx context.Context, method, path string, status int, duration time.Duration, size int, args ...any) {
	fields := append([]any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}, args...)

	log := FromContext(ctx)
	switch {
	case status >= 500:
		log.Error("HTTP Server Error", fields...)
	case status >= 400:
		log.Warn("HTTP Client Error", fields...)
	default:
		log.Info("HTTP Request", fields...)
	}
}

// UpstreamLog logs one call to the remote API. Failed calls are logged at warn level.
func UpstreamLog(fields []any, method, endpoint string, status int, duration time.Duration, err error) {
	fields = append(fields,
		"method", method,
		"endpoint", endpoint,
		"status", status,
		"duration_ms", duration.Milliseconds(),
	)

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Warn("upstream call failed", fields...)
		return
	}
	GetLogger().Debug("upstream call", fields...)
}
