// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prettify turns a stream of newline-delimited JSON log records into the text
// they carry.
//
// Container build and run logs arrive as one JSON object per line, e.g.
//
//	{"stream":"Step 1/4 : FROM alpine\n"}
//
// The Transformer extracts one field (default "stream") from each line and pushes it
// to a Sink as one output chunk. Chunks declared as text are passed through untouched.
package prettify
