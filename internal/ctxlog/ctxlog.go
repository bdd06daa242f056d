// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnvVar is the environment variable that sets the initial log level.
const LogLevelEnvVar = "MBL_LOG_LEVEL"

// ErrUnknownLevel is returned when a log level name cannot be parsed.
var ErrUnknownLevel = errors.New("unknown log level")

type loggerKey struct{}

// LevelVar is shared by every logger created by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is the console logger used when the context carries none.
var DefaultLogger = slog.New(NewConsoleHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}, WithAutoColour()))

// JSONLogger emits one JSON object per record on stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a copy of ctx carrying logger.
// A nil logger stores DefaultLogger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewForWriter returns a copy of ctx carrying a console logger that writes to w.
// It is used by tests and by commands that need logs captured rather than printed.
func NewForWriter(ctx context.Context, w io.Writer) context.Context {
	return New(ctx, slog.New(NewConsoleHandler(w, &slog.HandlerOptions{Level: LevelVar})))
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// ParseLevel converts a level name (case insensitive) into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// SetLevel parses s and applies it to LevelVar. An empty string is a no-op.
func SetLevel(s string) error {
	if s == "" {
		return nil
	}

	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}

	LevelVar.Set(lvl)

	return nil
}

func logLevelFromEnv() slog.Level {
	lvl, err := ParseLevel(os.Getenv(LogLevelEnvVar))
	if err != nil {
		return slog.LevelWarn
	}

	return lvl
}
