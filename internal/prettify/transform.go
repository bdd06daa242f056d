// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
)

// DefaultField is the record field extracted when no other is configured.
const DefaultField = "stream"

// State is the transformer's position in its chunk cycle.
type State int

const (
	// AwaitingChunk is the initial state and the state between chunks.
	AwaitingChunk State = iota
	// Emitting is held while a chunk is being processed.
	Emitting
)

// String returns the state name.
func (s State) String() string {
	if s == Emitting {
		return "EMITTING"
	}

	return "AWAITING_CHUNK"
}

// Option configures a Transformer.
type Option func(t *Transformer)

// WithField sets the record field to extract.
func WithField(name string) Option {
	return func(t *Transformer) {
		if name != "" {
			t.field = name
		}
	}
}

// WithParseErrorPolicy sets how malformed lines are handled.
func WithParseErrorPolicy(p ParseErrorPolicy) Option {
	return func(t *Transformer) {
		t.policy = p
	}
}

// WithSeparator appends sep to every extracted value. The default is no separator.
func WithSeparator(sep string) Option {
	return func(t *Transformer) {
		t.sep = []byte(sep)
	}
}

// WithLineBuffering controls whether a trailing partial line is held back until the next
// chunk (or Flush) completes it. It is enabled by default; when disabled every chunk is
// split on its own and a line that straddles two chunks is parsed as two fragments.
func WithLineBuffering(enabled bool) Option {
	return func(t *Transformer) {
		t.buffered = enabled
	}
}

// Transformer extracts one field from NDJSON records. It is not safe for concurrent use;
// the host pipeline delivers one chunk at a time.
type Transformer struct {
	field    string
	policy   ParseErrorPolicy
	sep      []byte
	buffered bool

	partial []byte
	lines   int
	state   State
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		field:    DefaultField,
		policy:   PolicyWarn,
		buffered: true,
	}

	for _, o := range opts {
		o(t)
	}

	return t
}

// State returns the current state.
func (t *Transformer) State() State {
	return t.state
}

// Lines returns the number of non-empty lines processed so far.
func (t *Transformer) Lines() int {
	return t.lines
}

// Transform processes one chunk, pushing zero or more output chunks to sink.
// It returns exactly once per chunk; a nil return means the next chunk may be delivered.
func (t *Transformer) Transform(ctx context.Context, c Chunk, sink Sink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.state = Emitting
	defer func() { t.state = AwaitingChunk }()

	switch {
	case c.Encoding.IsRaw():
	case c.Encoding.IsText():
		if len(c.Data) == 0 {
			return nil
		}

		return push(sink, c.Data)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, c.Encoding)
	}

	data := c.Data

	if t.buffered {
		pending := make([]byte, 0, len(t.partial)+len(data))
		pending = append(pending, t.partial...)
		pending = append(pending, data...)

		idx := bytes.LastIndexByte(pending, '\n')
		if idx < 0 {
			t.partial = pending
			return nil
		}

		t.partial = pending[idx+1:]
		data = pending[:idx]
	}

	for line := range bytes.SplitSeq(data, []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}

		if err := t.emit(ctx, line, sink); err != nil {
			return err
		}
	}

	return nil
}

// Flush processes a buffered trailing line once the upstream has ended.
func (t *Transformer) Flush(ctx context.Context, sink Sink) error {
	if len(t.partial) == 0 {
		return nil
	}

	t.state = Emitting
	defer func() { t.state = AwaitingChunk }()

	line := t.partial
	t.partial = nil

	return t.emit(ctx, line, sink)
}

func (t *Transformer) emit(ctx context.Context, line []byte, sink Sink) error {
	t.lines++

	value, err := t.extract(line)
	if err != nil {
		perr := newParseError(t.lines, line, err)

		switch t.policy {
		case PolicyFail:
			return perr
		case PolicySkip:
			return nil
		default:
			ctxlog.Warn(ctx, "skipping malformed log line", "line", perr.Line, "error", err.Error())
			return nil
		}
	}

	if len(t.sep) > 0 {
		value = append(value, t.sep...)
	}

	return push(sink, value)
}

func (t *Transformer) extract(line []byte) ([]byte, error) {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(line, &record); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}

		return nil, err
	}

	if record == nil {
		return nil, ErrNotObject
	}

	raw, ok := record[t.field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return []byte{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrFieldType, t.field)
	}

	return []byte(s), nil
}

func push(sink Sink, b []byte) error {
	if err := sink.Push(b); err != nil {
		if errors.Is(err, ErrSink) {
			return err
		}

		return fmt.Errorf("%w: %w", ErrSink, err)
	}

	return nil
}
