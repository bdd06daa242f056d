// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ARMmbed/mbl-cli/internal/color"
	"github.com/TylerBrock/colorjson"
)

var (
	// ErrMarshalAttribute is returned when the record attributes cannot be rendered.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log lines.
const TimeFormat = "[15:04:05.000]"

// ConsoleHandler is a slog.Handler that writes one line per record:
// timestamp, level, message and the attributes as indented JSON.
type ConsoleHandler struct {
	opts   slog.HandlerOptions
	fields map[string]any
	groups []string
	mu     *sync.Mutex
	w      io.Writer
	colour bool
	empty  bool
}

// Option configures a ConsoleHandler.
type Option func(h *ConsoleHandler)

// WithColour forces ANSI colour output.
func WithColour() Option {
	return func(h *ConsoleHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour when the color package detects a capable terminal.
func WithAutoColour() Option {
	return func(h *ConsoleHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs writes "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *ConsoleHandler) {
		h.empty = true
	}
}

// NewConsoleHandler creates a ConsoleHandler writing to w.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions, options ...Option) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &ConsoleHandler{
		opts:   *opts,
		fields: make(map[string]any),
		mu:     &sync.Mutex{},
		w:      w,
	}

	for _, o := range options {
		o(h)
	}

	return h
}

// Enabled reports whether the handler's level admits level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	target := c.groupMap(c.fields)

	for _, a := range attrs {
		c.addAttr(target, a)
	}

	return c
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.groups = append(c.groups, name)

	return c
}

// Handle formats and writes r.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	fields := cloneMap(h.fields)
	target := h.groupMap(fields)

	r.Attrs(func(a slog.Attr) bool {
		h.addAttr(target, a)
		return true
	})

	pruneEmpty(fields)

	out := strings.Builder{}

	if ts, ok := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ok {
		out.WriteString(h.paint(ts, color.FgWhite))
		out.WriteString(" ")
	}

	if lvl, ok := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); ok {
		out.WriteString(h.paint(lvl+":", levelColour(r.Level)))
		out.WriteString(" ")
	}

	if msg, ok := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); ok {
		out.WriteString(h.paint(msg, color.FgHiWhite))
		out.WriteString(" ")
	}

	if h.empty || len(fields) > 0 {
		b, err := h.renderFields(fields)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.Write(b)
	}

	out.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := io.WriteString(h.w, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// renderFields normalises the values through encoding/json so that colorjson only sees
// the basic types it knows how to print.
func (h *ConsoleHandler) renderFields(fields map[string]any) ([]byte, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !h.colour

	return f.Marshal(generic)
}

func (h *ConsoleHandler) builtin(key string, v slog.Value) (string, bool) {
	a := slog.Attr{Key: key, Value: v}
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return "", false
	}

	return a.Value.String(), true
}

func (h *ConsoleHandler) addAttr(m map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(h.groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return
		}

		dst := m
		if a.Key != "" {
			sub, ok := m[a.Key].(map[string]any)
			if !ok {
				sub = make(map[string]any)
				m[a.Key] = sub
			}

			dst = sub
		}

		for _, ga := range attrs {
			h.addAttr(dst, ga)
		}
	case slog.KindTime:
		m[a.Key] = a.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		m[a.Key] = a.Value.Duration().String()
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			m[a.Key] = err.Error()
			return
		}

		m[a.Key] = a.Value.Any()
	default:
		m[a.Key] = a.Value.Any()
	}
}

func (h *ConsoleHandler) groupMap(root map[string]any) map[string]any {
	m := root

	for _, g := range h.groups {
		sub, ok := m[g].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[g] = sub
		}

		m = sub
	}

	return m
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		opts:   h.opts,
		fields: cloneMap(h.fields),
		groups: append([]string(nil), h.groups...),
		mu:     h.mu,
		w:      h.w,
		colour: h.colour,
		empty:  h.empty,
	}
}

func (h *ConsoleHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Wrap(s, c)
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelWarn:
		return color.FgBlue
	case l < slog.LevelError:
		return color.FgYellow
	case l <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

func cloneMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))

	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			dst[k] = cloneMap(sub)
			continue
		}

		dst[k] = v
	}

	return dst
}

// pruneEmpty drops groups that ended up without attributes.
func pruneEmpty(m map[string]any) {
	for k, v := range m {
		sub, ok := v.(map[string]any)
		if !ok {
			continue
		}

		pruneEmpty(sub)

		if len(sub) == 0 {
			delete(m, k)
		}
	}
}
