// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package updatecheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-version"
)

const (
	// DisableEnvVar turns the check off when set to any non-empty value.
	DisableEnvVar = "MBL_NO_UPDATE_NOTIFIER"
	// DefaultTimeout bounds the feed query.
	DefaultTimeout = 2 * time.Second
)

// ErrVersion is returned when a version string cannot be parsed.
var ErrVersion = errors.New("invalid version")

// Result is the outcome of a check.
type Result struct {
	Current string
	Latest  string
	URL     string
	// Newer is true when Latest is strictly greater than Current.
	Newer bool
}

// Checker compares the running version against the release feed.
type Checker struct {
	Current   string
	FeedURL   string
	StatePath string
	Interval  time.Duration
	Timeout   time.Duration
	Client    *http.Client

	now func() time.Time
}

// NewChecker returns a Checker with default timeout, state path and HTTP client.
func NewChecker(current, feedURL string, interval time.Duration) *Checker {
	return &Checker{
		Current:   current,
		FeedURL:   feedURL,
		StatePath: DefaultStatePath(),
		Interval:  interval,
		Timeout:   DefaultTimeout,
		Client:    cleanhttp.DefaultClient(),
		now:       time.Now,
	}
}

// Enabled reports whether a check should run for this invocation.
func Enabled(current string, optOut bool, lookupEnv func(string) (string, bool)) bool {
	if optOut || current == "" || current == "dev" {
		return false
	}

	if v, ok := lookupEnv(DisableEnvVar); ok && v != "" {
		return false
	}

	_, err := version.NewVersion(current)

	return err == nil
}

// Check returns the comparison result. The feed is only queried when the cached state is stale.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	current, err := version.NewVersion(c.Current)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrVersion, c.Current, err)
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	st := &State{}

	if c.StatePath != "" {
		if cached, err := LoadState(c.StatePath); err != nil {
			ctxlog.Debug(ctx, "ignoring update check state", "error", err.Error())
		} else {
			st = cached
		}
	}

	if !st.Fresh(now(), c.Interval) {
		rel, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		st = &State{LastChecked: now().UTC(), Latest: rel.TagName, URL: rel.HTMLURL}

		if c.StatePath != "" {
			if err := SaveState(c.StatePath, st); err != nil {
				ctxlog.Debug(ctx, "failed to save update check state", "error", err.Error())
			}
		}
	}

	latest, err := version.NewVersion(st.Latest)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrMalformedFeed, st.Latest, err)
	}

	return &Result{
		Current: current.String(),
		Latest:  latest.String(),
		URL:     st.URL,
		Newer:   latest.GreaterThan(current),
	}, nil
}

func (c *Checker) fetch(ctx context.Context) (*Release, error) {
	client := c.Client
	if client == nil {
		client = cleanhttp.DefaultClient()
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return FetchLatest(ctx, client, c.FeedURL)
}

// Start runs Check in the background. The returned channel receives exactly one value,
// nil when the check failed or found nothing newer, and is then closed.
func (c *Checker) Start(ctx context.Context) <-chan *Result {
	ch := make(chan *Result, 1)

	go func() {
		defer close(ch)

		res, err := c.Check(ctx)
		if err != nil {
			ctxlog.Debug(ctx, "update check failed", "error", err.Error())
			ch <- nil

			return
		}

		ctxlog.Debug(ctx, "update check complete", "current", res.Current, "latest", res.Latest)

		if !res.Newer {
			res = nil
		}

		ch <- res
	}()

	return ch
}

// Wait returns the result from ch, or nil if it is not available before ctx is done.
func Wait(ctx context.Context, ch <-chan *Result) *Result {
	select {
	case res := <-ch:
		return res
	case <-ctx.Done():
		return nil
	}
}
