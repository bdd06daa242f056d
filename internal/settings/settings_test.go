// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)
}

func TestLoad(t *testing.T) {
	content := `
log_level: debug
exclude_commands:
  - app/commands/restart
update_check:
  enabled: false
  interval: 12h
  url: https://example.com/feed.json
prettify:
  field: msg
  on_parse_error: fail
  separator: "\n"
`
	memFs(t, map[string]string{"/etc/mbl.yaml": content})

	s, err := Load("/etc/mbl.yaml")
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, []string{"app/commands/restart"}, s.ExcludeCommands)
	assert.False(t, s.UpdateCheckEnabled())
	assert.Equal(t, 12*time.Hour, s.UpdateInterval())
	assert.Equal(t, "https://example.com/feed.json", s.UpdateURL())
	assert.Equal(t, "msg", s.Prettify.Field)
	assert.Equal(t, "fail", s.Prettify.OnParseError)
	require.NotNil(t, s.Prettify.Separator)
	assert.Equal(t, "\n", *s.Prettify.Separator)
}

func TestLoad_Missing(t *testing.T) {
	memFs(t, nil)

	s, err := Load("/nope.yaml")
	require.NoError(t, err)
	assert.True(t, s.UpdateCheckEnabled())
	assert.Equal(t, DefaultUpdateInterval, s.UpdateInterval())
	assert.Equal(t, DefaultUpdateURL, s.UpdateURL())
	assert.Nil(t, s.Prettify.Separator)
}

func TestLoad_DefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	memFs(t, map[string]string{filepath.Join("/xdg", "mbl", "config.yaml"): "log_level: error\n"})

	assert.Equal(t, filepath.Join("/xdg", "mbl", "config.yaml"), DefaultPath())

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", s.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "malformed yaml", content: "log_level: [unterminated\n", want: ErrInvalidYaml},
		{name: "bad interval", content: "update_check:\n  interval: soon\n", want: ErrInvalidInterval},
		{name: "negative interval", content: "update_check:\n  interval: -1h\n", want: ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFs(t, map[string]string{"/c.yaml": tt.content})

			_, err := Load("/c.yaml")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}
