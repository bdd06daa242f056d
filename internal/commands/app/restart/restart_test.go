// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package restart

import (
	"bytes"
	"context"
	"testing"

	"github.com/ARMmbed/mbl-cli/internal/commandregistry"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestDescriptor(t *testing.T) {
	d := Descriptor()

	require.NoError(t, d.Validate())
	assert.Equal(t, "restart", d.Token())
	assert.Equal(t, "Restart the application", d.Describe)
	assert.Equal(t, "address of the device", d.Builder["address"].Description)
}

func TestRestart(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{
			name: "no address",
			argv: []string{"restart"},
			want: "command not implemented {}",
		},
		{
			name: "address flag",
			argv: []string{"restart", "--address", "10.0.0.5"},
			want: `command not implemented {"address":"10.0.0.5"}`,
		},
		{
			name: "address positional",
			argv: []string{"restart", "fe80::1"},
			want: `command not implemented {"address":"fe80::1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := commandregistry.New()
			require.NoError(t, err)
			require.NoError(t, r.Load(context.Background(), Register))

			var logs bytes.Buffer

			root := &cli.Command{Name: "mbl", Commands: r.Commands(), Writer: &bytes.Buffer{}}

			err = root.Run(ctxlog.NewForWriter(context.Background(), &logs), append([]string{"mbl"}, tt.argv...))
			require.NoError(t, err, "placeholder commands exit successfully")
			assert.Contains(t, logs.String(), tt.want)
		})
	}
}

func TestRegister_Excluded(t *testing.T) {
	r, err := commandregistry.New(commandregistry.WithExclude("app/*"))
	require.NoError(t, err)
	require.NoError(t, Register(r))

	_, ok := r.Lookup("restart")
	assert.False(t, ok)
}
