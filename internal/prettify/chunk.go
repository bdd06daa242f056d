// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import (
	"fmt"
	"io"
)

// Encoding declares how a chunk's bytes should be interpreted.
type Encoding string

// EncodingBuffer marks raw binary input that carries NDJSON. The zero value is treated the same way.
const EncodingBuffer Encoding = "buffer"

// Text encodings. Chunks in any of these are already decoded and pass through verbatim.
const (
	EncodingUTF8    Encoding = "utf8"
	EncodingUTF8Alt Encoding = "utf-8"
	EncodingASCII   Encoding = "ascii"
	EncodingLatin1  Encoding = "latin1"
	EncodingBinary  Encoding = "binary"
	EncodingHex     Encoding = "hex"
	EncodingBase64  Encoding = "base64"
	EncodingUCS2    Encoding = "ucs2"
	EncodingUTF16LE Encoding = "utf16le"
)

var textEncodings = map[Encoding]struct{}{
	EncodingUTF8:    {},
	EncodingUTF8Alt: {},
	EncodingASCII:   {},
	EncodingLatin1:  {},
	EncodingBinary:  {},
	EncodingHex:     {},
	EncodingBase64:  {},
	EncodingUCS2:    {},
	EncodingUTF16LE: {},
}

// IsRaw reports whether e marks raw binary input.
func (e Encoding) IsRaw() bool {
	return e == "" || e == EncodingBuffer
}

// IsText reports whether e is a recognised text encoding.
func (e Encoding) IsText() bool {
	_, ok := textEncodings[e]
	return ok
}

// Chunk is one piece of input. Chunks need not be line aligned.
type Chunk struct {
	Data     []byte
	Encoding Encoding
}

// Raw returns a raw binary chunk.
func Raw(b []byte) Chunk {
	return Chunk{Data: b, Encoding: EncodingBuffer}
}

// Text returns a chunk holding already decoded text.
func Text(s string) Chunk {
	return Chunk{Data: []byte(s), Encoding: EncodingUTF8}
}

// Sink receives output chunks. Push must not retain b after it returns.
type Sink interface {
	Push(b []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(b []byte) error

// Push calls f(b).
func (f SinkFunc) Push(b []byte) error {
	return f(b)
}

// WriterSink writes every output chunk to w.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(b []byte) error {
		if len(b) == 0 {
			return nil
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("%w: %w", ErrSink, err)
		}

		return nil
	})
}
