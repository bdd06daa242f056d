// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

const (
	// ConfigEnvVar names an explicit settings file path.
	ConfigEnvVar = "MBL_CONFIG"
	// DefaultUpdateInterval is how often the release feed is consulted.
	DefaultUpdateInterval = 24 * time.Hour
	// DefaultUpdateURL is the release feed queried by the update check.
	DefaultUpdateURL = "https://api.github.com/repos/ARMmbed/mbl-cli/releases/latest"
)

var (
	// ErrRead is returned when the settings file exists but cannot be read.
	ErrRead = errors.New("failed to read settings file")
	// ErrInvalidYaml is returned when the settings file cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrInvalidInterval is returned when update_check.interval is not a duration.
	ErrInvalidInterval = errors.New("invalid update check interval")
)

// Settings is the decoded configuration file.
type Settings struct {
	LogLevel        string      `yaml:"log_level"`
	ExcludeCommands []string    `yaml:"exclude_commands"`
	UpdateCheck     UpdateCheck `yaml:"update_check"`
	Prettify        Prettify    `yaml:"prettify"`
}

// UpdateCheck configures the release notifier.
type UpdateCheck struct {
	// Enabled is a pointer so an omitted key keeps the default of true.
	Enabled  *bool  `yaml:"enabled"`
	Interval string `yaml:"interval"`
	URL      string `yaml:"url"`
}

// Prettify holds defaults for the prettify command flags.
type Prettify struct {
	Field        string  `yaml:"field"`
	OnParseError string  `yaml:"on_parse_error"`
	Separator    *string `yaml:"separator"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{}
}

// UpdateCheckEnabled reports whether the notifier should run.
func (s *Settings) UpdateCheckEnabled() bool {
	return s.UpdateCheck.Enabled == nil || *s.UpdateCheck.Enabled
}

// UpdateInterval returns the configured interval or the default.
func (s *Settings) UpdateInterval() time.Duration {
	if s.UpdateCheck.Interval == "" {
		return DefaultUpdateInterval
	}

	d, err := time.ParseDuration(s.UpdateCheck.Interval)
	if err != nil || d <= 0 {
		return DefaultUpdateInterval
	}

	return d
}

// UpdateURL returns the configured feed URL or the default.
func (s *Settings) UpdateURL() string {
	if s.UpdateCheck.URL == "" {
		return DefaultUpdateURL
	}

	return s.UpdateCheck.URL
}

// DefaultPath returns the settings location under the user configuration directory.
// It returns "" when no such directory can be determined.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}

	return filepath.Join(dir, "mbl", "config.yaml")
}

// Load reads the settings file at path. An empty path uses DefaultPath.
// A missing file yields the defaults; an unreadable or malformed one is an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	if path == "" {
		return Default(), nil
	}

	data, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	return Parse(data)
}

// Parse decodes settings from YAML.
func Parse(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err)
	}

	if s.UpdateCheck.Interval != "" {
		if d, err := time.ParseDuration(s.UpdateCheck.Interval); err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, s.UpdateCheck.Interval)
		}
	}

	return s, nil
}
