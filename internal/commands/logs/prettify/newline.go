// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import "io"

// newlineWriter inserts a newline before a value when the previous value did not end with one.
type newlineWriter struct {
	w       io.Writer
	pending bool
}

func (n *newlineWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if n.pending {
		if _, err := n.w.Write([]byte{'\n'}); err != nil {
			return 0, err
		}
	}

	n.pending = p[len(p)-1] != '\n'

	return n.w.Write(p)
}

func (n *newlineWriter) finish() error {
	if !n.pending {
		return nil
	}

	n.pending = false
	_, err := n.w.Write([]byte{'\n'})

	return err
}
