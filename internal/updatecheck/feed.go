// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package updatecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxFeedSize = 1 << 20

var (
	// ErrFeed is returned when the release feed cannot be fetched.
	ErrFeed = errors.New("failed to fetch release feed")
	// ErrMalformedFeed is returned when the feed does not describe a release.
	ErrMalformedFeed = errors.New("malformed release feed")
)

// Release is the subset of the release feed the check needs.
// The field names follow the GitHub "latest release" API.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatest queries url for the latest release.
func FetchLatest(ctx context.Context, client *http.Client, url string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Join(ErrFeed, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFeed, err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFeed, url, resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedSize)).Decode(&rel); err != nil {
		return nil, errors.Join(ErrMalformedFeed, err)
	}

	if rel.TagName == "" {
		return nil, fmt.Errorf("%w: missing tag_name", ErrMalformedFeed)
	}

	return &rel, nil
}
