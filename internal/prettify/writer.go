// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import (
	"context"
	"errors"
	"io"
)

const copyBufferSize = 32 * 1024

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("prettify writer is closed")

// Writer is an io.WriteCloser that runs every Write through a Transformer.
// Each Write is one raw chunk. Close flushes any buffered trailing line.
type Writer struct {
	ctx    context.Context
	t      *Transformer
	sink   Sink
	closed bool
}

var _ io.WriteCloser = (*Writer)(nil)

// NewWriter returns a Writer that sends extracted values to dst.
func NewWriter(ctx context.Context, dst io.Writer, opts ...Option) *Writer {
	return &Writer{
		ctx:  ctx,
		t:    New(opts...),
		sink: WriterSink(dst),
	}
}

// Write implements io.Writer. On success it always reports len(p) consumed.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}

	if err := w.t.Transform(w.ctx, Raw(p), w.sink); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close flushes the transformer. Calling it twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	return w.t.Flush(w.ctx, w.sink)
}

// Copy reads src until EOF, transforms it and writes the result to dst.
// It returns the number of input bytes consumed. Cancellation is checked between reads.
func Copy(ctx context.Context, dst io.Writer, src io.Reader, opts ...Option) (int64, error) {
	w := NewWriter(ctx, dst, opts...)
	buf := make([]byte, copyBufferSize)

	var total int64

	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			total += int64(n)

			if _, err := w.Write(buf[:n]); err != nil {
				return total, err
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}

		if rerr != nil {
			return total, rerr
		}
	}

	return total, w.Close()
}
