// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		opts  *slog.HandlerOptions
		want  bool
	}{
		{name: "debug on debug handler", level: slog.LevelDebug, opts: &slog.HandlerOptions{Level: slog.LevelDebug}, want: true},
		{name: "debug on info handler", level: slog.LevelDebug, opts: &slog.HandlerOptions{Level: slog.LevelInfo}, want: false},
		{name: "error on warn handler", level: slog.LevelError, opts: &slog.HandlerOptions{Level: slog.LevelWarn}, want: true},
		{name: "nil options default to info", level: slog.LevelInfo, opts: nil, want: true},
		{name: "nil options reject debug", level: slog.LevelDebug, opts: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewConsoleHandler(&bytes.Buffer{}, tt.opts)
			assert.Equal(t, tt.want, h.Enabled(context.Background(), tt.level))
		})
	}
}

func TestConsoleHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []any
		options []Option
		expect  []string
		reject  []string
	}{
		{
			name:    "info without attrs",
			level:   slog.LevelInfo,
			message: "plain message",
			expect:  []string{"INFO:", "plain message"},
			reject:  []string{"{"},
		},
		{
			name:    "debug with attrs",
			level:   slog.LevelDebug,
			message: "debug message",
			attrs:   []any{"key", "value", "number", 42},
			expect:  []string{"DEBUG:", "debug message", `"key": "value"`, `"number": 42`},
		},
		{
			name:    "error attr rendered as message",
			level:   slog.LevelError,
			message: "failed",
			attrs:   []any{"error", errors.New("boom")},
			expect:  []string{"ERROR:", `"error": "boom"`},
		},
		{
			name:    "group attr nests",
			level:   slog.LevelWarn,
			message: "grouped",
			attrs:   []any{slog.Group("req", slog.String("id", "abc"))},
			expect:  []string{"WARN:", `"req": {`, `"id": "abc"`},
		},
		{
			name:    "empty attrs output enabled",
			level:   slog.LevelInfo,
			message: "empty",
			options: []Option{WithOutputEmptyAttrs()},
			expect:  []string{"INFO:", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, tt.options...)
			r := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			r.Add(tt.attrs...)

			require.NoError(t, h.Handle(context.Background(), r))

			out := buf.String()
			for _, want := range tt.expect {
				assert.Contains(t, out, want)
			}

			for _, unwanted := range tt.reject {
				assert.NotContains(t, out, unwanted)
			}

			assert.True(t, strings.HasSuffix(out, "\n"), "output should end with newline")
		})
	}
}

func TestConsoleHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.With("command", "restart").WithGroup("args").Info("invoked", "address", "10.0.0.5")

	out := buf.String()
	assert.Contains(t, out, `"command": "restart"`)
	assert.Contains(t, out, `"args": {`)
	assert.Contains(t, out, `"address": "10.0.0.5"`)

	buf.Reset()
	logger.Info("unaffected")
	assert.NotContains(t, buf.String(), "restart", "derived handlers must not leak attributes into the parent")
}

func TestConsoleHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	h := NewConsoleHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case "secret":
				return slog.String("secret", "[REDACTED]")
			}

			return a
		},
	})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "login", 0)
	r.Add("secret", "password123", "public", "data")

	require.NoError(t, h.Handle(context.Background(), r))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO:"), "time should be suppressed: %q", out)
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "password123")
	assert.Contains(t, out, "public")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestConsoleHandler_WriteError(t *testing.T) {
	h := NewConsoleHandler(failingWriter{}, &slog.HandlerOptions{Level: slog.LevelDebug})
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0))

	require.ErrorIs(t, err, ErrIoWrite)
}

func TestConsoleHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	h := NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, WithColour())

	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError, slog.LevelError + 2} {
		buf.Reset()
		require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), lvl, "msg", 0)))
		assert.Contains(t, buf.String(), "\033[", "level %v should be coloured", lvl)
	}
}
