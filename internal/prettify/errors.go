// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("malformed log line")
	// ErrNotObject is returned when a line is valid JSON but not an object.
	ErrNotObject = errors.New("log line is not a JSON object")
	// ErrFieldType is returned when the extracted field is not a string.
	ErrFieldType = errors.New("field is not a string")
	// ErrUnknownEncoding is returned for a chunk whose encoding is neither raw nor a known text encoding.
	ErrUnknownEncoding = errors.New("unknown chunk encoding")
	// ErrUnknownPolicy is returned when a parse error policy name is not recognised.
	ErrUnknownPolicy = errors.New("unknown parse error policy")
	// ErrSink is returned when the sink rejects an output chunk.
	ErrSink = errors.New("failed to push output chunk")
)

// ParseError describes a line that could not be turned into output.
type ParseError struct {
	// Line is the 1-based count of non-empty lines seen by the transformer.
	Line int
	// Text is the offending line, truncated for display.
	Text string
	Err  error
}

const maxErrorText = 80

func newParseError(line int, text []byte, err error) *ParseError {
	s := string(text)
	if len(s) > maxErrorText {
		cut := maxErrorText - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}

		s = s[:cut] + "..."
	}

	return &ParseError{Line: line, Text: s, Err: err}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s %d", ErrParse.Error(), e.Line)

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap exposes ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
