// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, Args) error { return nil }

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		d       Descriptor
		wantErr string
	}{
		{
			name: "valid descriptor",
			d: Descriptor{
				Name:     "restart [address]",
				Describe: "Restart the application",
				Builder:  Schema{"address": {Description: "address of the device"}},
				Handler:  noop,
			},
		},
		{
			name: "valid typed parameters",
			d: Descriptor{
				Name:     "tail [files..]",
				Describe: "Tail files",
				Builder: Schema{
					"files":  {Description: "files to read", Type: TypeStringSlice},
					"lines":  {Description: "line count", Type: TypeInt, Default: 10},
					"follow": {Description: "follow", Type: TypeBool, Default: false},
				},
				Handler: noop,
			},
		},
		{
			name:    "bad syntax",
			d:       Descriptor{Name: "", Describe: "x", Handler: noop},
			wantErr: "invalid command syntax",
		},
		{
			name:    "missing description",
			d:       Descriptor{Name: "restart", Handler: noop},
			wantErr: "has no description",
		},
		{
			name:    "missing handler",
			d:       Descriptor{Name: "restart", Describe: "Restart"},
			wantErr: "has no handler",
		},
		{
			name: "parameter without description",
			d: Descriptor{
				Name: "restart", Describe: "Restart", Handler: noop,
				Builder: Schema{"address": {}},
			},
			wantErr: "has no description",
		},
		{
			name: "unsupported type",
			d: Descriptor{
				Name: "restart", Describe: "Restart", Handler: noop,
				Builder: Schema{"address": {Description: "a", Type: "float"}},
			},
			wantErr: "unsupported type",
		},
		{
			name: "default type mismatch",
			d: Descriptor{
				Name: "restart", Describe: "Restart", Handler: noop,
				Builder: Schema{"retries": {Description: "r", Type: TypeInt, Default: "three"}},
			},
			wantErr: "is not a int",
		},
		{
			name: "reserved parameter name",
			d: Descriptor{
				Name: "restart", Describe: "Restart", Handler: noop,
				Builder: Schema{ExtraArgsKey: {Description: "extras"}},
			},
			wantErr: "reserved",
		},
		{
			name: "variadic positional needs slice parameter",
			d: Descriptor{
				Name: "tail [files..]", Describe: "Tail", Handler: noop,
				Builder: Schema{"files": {Description: "files"}},
			},
			wantErr: "variadic positional",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidDescriptor)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDescriptor_Token(t *testing.T) {
	assert.Equal(t, "restart", (&Descriptor{Name: "restart [address]"}).Token())
	assert.Equal(t, "list", (&Descriptor{Name: " list "}).Token())
	assert.Empty(t, (&Descriptor{}).Token())
}

func TestSchema_Names(t *testing.T) {
	s := Schema{
		"zeta":  {Description: "z"},
		"alpha": {Description: "a"},
		"mid":   {Description: "m"},
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())
	assert.Empty(t, Schema(nil).Names())
}

func TestArgs(t *testing.T) {
	args := Args{
		"address": "10.0.0.5",
		"force":   true,
		"count":   3,
		"tags":    []string{"a", "b"},
	}

	v, ok := args.String("address")
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.5", v)

	b, ok := args.Bool("force")
	assert.True(t, ok)
	assert.True(t, b)

	n, ok := args.Int("count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	s, ok := args.Strings("tags")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, s)

	_, ok = args.String("missing")
	assert.False(t, ok)
	assert.False(t, args.Has("missing"))
	assert.True(t, args.Has("address"))
}

func TestArgs_JSON(t *testing.T) {
	assert.Equal(t, "{}", Args{}.JSON())
	assert.Equal(t, "{}", Args(nil).JSON())
	assert.Equal(t, `{"address":"10.0.0.5"}`, Args{"address": "10.0.0.5"}.JSON())
	assert.Equal(t, `{"a":1,"b":"x"}`, Args{"b": "x", "a": 1}.JSON(), "keys are sorted")
}
