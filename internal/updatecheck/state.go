// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package updatecheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ErrState is returned when the state file cannot be read or written.
var ErrState = errors.New("update check state")

// State is the cached outcome of the last feed query.
type State struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
	URL         string    `json:"url,omitempty"`
}

// Fresh reports whether the state was recorded less than interval before now.
func (s *State) Fresh(now time.Time, interval time.Duration) bool {
	return !s.LastChecked.IsZero() && now.Sub(s.LastChecked) < interval && s.Latest != ""
}

// DefaultStatePath returns the state file location under the user cache directory,
// or "" when there is none.
func DefaultStatePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "mbl", "update-check.json")
}

// LoadState reads the state file. A missing file yields an empty state.
func LoadState(path string) (*State, error) {
	s := &State{}

	data, err := afero.ReadFile(FsFactory(), path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrState, err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrState, path, err)
	}

	return s, nil
}

// SaveState writes the state file, creating its directory.
func SaveState(path string, s *State) error {
	afs := FsFactory()

	if err := afs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrState, err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrState, err)
	}

	if err := afero.WriteFile(afs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrState, err)
	}

	return nil
}
