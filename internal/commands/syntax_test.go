// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Syntax
		wantErr bool
	}{
		{
			name:  "bare command",
			input: "list",
			want:  Syntax{Command: "list"},
		},
		{
			name:  "optional positional",
			input: "restart [address]",
			want: Syntax{
				Command:     "restart",
				Positionals: []Positional{{Name: "address", Optional: true}},
			},
		},
		{
			name:  "required then optional",
			input: "get <src> [dst]",
			want: Syntax{
				Command: "get",
				Positionals: []Positional{
					{Name: "src"},
					{Name: "dst", Optional: true},
				},
			},
		},
		{
			name:  "variadic last",
			input: "prettify [files..]",
			want: Syntax{
				Command:     "prettify",
				Positionals: []Positional{{Name: "files", Optional: true, Variadic: true}},
			},
		},
		{
			name:  "extra whitespace",
			input: "  restart   [address]  ",
			want: Syntax{
				Command:     "restart",
				Positionals: []Positional{{Name: "address", Optional: true}},
			},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "placeholder first", input: "[address] restart", wantErr: true},
		{name: "unwrapped placeholder", input: "restart address", wantErr: true},
		{name: "empty placeholder", input: "restart []", wantErr: true},
		{name: "mismatched brackets", input: "restart [address>", wantErr: true},
		{name: "variadic not last", input: "copy [srcs..] <dst>", wantErr: true},
		{name: "required after optional", input: "copy [src] <dst>", wantErr: true},
		{name: "duplicate positional", input: "copy [a] [a]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSyntax)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyntax_Usage(t *testing.T) {
	syn, err := ParseName("get <src> [dst] [rest..]")
	require.NoError(t, err)

	assert.Equal(t, "<src> [dst] [rest..]", syn.Usage())

	bare, err := ParseName("list")
	require.NoError(t, err)
	assert.Empty(t, bare.Usage())
}
