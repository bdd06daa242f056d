// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv(NoColor, "1")
	assert.False(t, isColorCapable(nil), "NO_COLOR should disable color")

	t.Setenv(ForceColor, "1")
	assert.False(t, isColorCapable(nil), "NO_COLOR should win over FORCE_COLOR")

	t.Setenv(NoColor, "")
	assert.True(t, isColorCapable(nil), "FORCE_COLOR should enable color")

	t.Setenv(ForceColor, "")
	assert.False(t, isColorCapable(nil), "nil file is never a terminal")
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		codes []Code
		want  string
	}{
		{
			name: "no codes",
			in:   "plain",
			want: "plain",
		},
		{
			name:  "single code",
			in:    "red",
			codes: []Code{FgRed},
			want:  "\033[31mred\033[0m",
		},
		{
			name:  "multiple codes",
			in:    "bold cyan",
			codes: []Code{Bold, FgCyan},
			want:  "\033[1;36mbold cyan\033[0m",
		},
		{
			name:  "hi intensity",
			in:    "x",
			codes: []Code{FgHiWhite},
			want:  "\033[97mx\033[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.in, tt.codes...))
		})
	}
}

func TestColorizeDisabled(t *testing.T) {
	old := enabled
	enabled = false

	t.Cleanup(func() { enabled = old })

	assert.Equal(t, "text", Colorize("text", FgGreen))
}

func TestColorizeEnabled(t *testing.T) {
	old := enabled
	enabled = true

	t.Cleanup(func() { enabled = old })

	assert.Equal(t, "\033[32mtext\033[0m", Colorize("text", FgGreen))
	assert.True(t, Enabled())
}
