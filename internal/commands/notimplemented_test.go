// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotImplemented(t *testing.T) {
	tests := []struct {
		name string
		args Args
		want string
	}{
		{
			name: "no arguments",
			args: Args{},
			want: "command not implemented {}",
		},
		{
			name: "with address",
			args: Args{"address": "10.0.0.5"},
			want: `command not implemented {"address":"10.0.0.5"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			ctx := ctxlog.NewForWriter(context.Background(), &buf)

			require.NoError(t, NotImplemented()(ctx, tt.args))
			assert.Contains(t, buf.String(), "WARN:")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestStreamsFrom(t *testing.T) {
	defaults := StreamsFrom(context.Background())
	assert.NotNil(t, defaults.In)
	assert.NotNil(t, defaults.Out)
	assert.NotNil(t, defaults.Err)

	var out bytes.Buffer

	s := StreamsFrom(WithStreams(context.Background(), Streams{Out: &out}))
	assert.Same(t, &out, s.Out)
	assert.NotNil(t, s.In, "missing streams are filled from the process")
}
