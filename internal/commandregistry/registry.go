// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ARMmbed/mbl-cli/internal/commands"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/hashicorp/go-multierror"
	"github.com/zyedidia/glob"
)

var (
	// ErrNilDescriptor is returned when a nil descriptor is registered.
	ErrNilDescriptor = errors.New("descriptor is nil")
	// ErrDuplicateCommand is returned when two descriptors share a leading token.
	ErrDuplicateCommand = errors.New("command already registered")
	// ErrInvalidExclude is returned when an exclusion pattern does not compile.
	ErrInvalidExclude = errors.New("invalid exclude pattern")
	// ErrLoad is returned when one or more register functions fail.
	ErrLoad = errors.New("failed to load commands")
)

// RegisterFunc adds one command module to a registry.
type RegisterFunc func(r *Registry) error

// Option configures a Registry.
type Option func(r *Registry) error

// WithExclude skips descriptors whose Path matches any of the glob patterns.
func WithExclude(patterns ...string) Option {
	return func(r *Registry) error {
		for _, p := range patterns {
			if p == "" {
				continue
			}

			g, err := glob.Compile(p)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", ErrInvalidExclude, p, err)
			}

			r.exclude = append(r.exclude, g)
		}

		return nil
	}
}

// Registry maps leading command tokens to descriptors.
// It is filled once at start-up and only read afterwards.
type Registry struct {
	descriptors map[string]*commands.Descriptor
	exclude     []*glob.Glob
	skipped     []string
}

// New creates an empty registry.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		descriptors: make(map[string]*commands.Descriptor),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register validates d and adds it under its leading token.
// Excluded descriptors are recorded and otherwise ignored.
func (r *Registry) Register(d *commands.Descriptor) error {
	if d == nil {
		return ErrNilDescriptor
	}

	if err := d.Validate(); err != nil {
		return err
	}

	if r.excluded(d.Path) {
		r.skipped = append(r.skipped, d.Path)
		return nil
	}

	tok := d.Token()
	if existing, ok := r.descriptors[tok]; ok {
		return fmt.Errorf("%w: %q (%s and %s)", ErrDuplicateCommand, tok, existing.Path, d.Path)
	}

	r.descriptors[tok] = d

	return nil
}

// Load runs every register function and reports all failures together.
func (r *Registry) Load(ctx context.Context, fns ...RegisterFunc) error {
	var result *multierror.Error

	for _, fn := range fns {
		if err := fn(r); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for _, p := range r.skipped {
		ctxlog.Debug(ctx, "command excluded", "path", p)
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrLoad, err)
	}

	ctxlog.Debug(ctx, "commands loaded", "count", len(r.descriptors))

	return nil
}

// Lookup returns the descriptor registered under token.
func (r *Registry) Lookup(token string) (*commands.Descriptor, bool) {
	d, ok := r.descriptors[token]
	return d, ok
}

// Descriptors returns all descriptors sorted by token.
func (r *Registry) Descriptors() []*commands.Descriptor {
	tokens := make([]string, 0, len(r.descriptors))
	for tok := range r.descriptors {
		tokens = append(tokens, tok)
	}

	slices.Sort(tokens)

	out := make([]*commands.Descriptor, len(tokens))
	for i, tok := range tokens {
		out[i] = r.descriptors[tok]
	}

	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Skipped returns the paths of descriptors dropped by the exclusion patterns.
func (r *Registry) Skipped() []string {
	return slices.Clone(r.skipped)
}

func (r *Registry) excluded(path string) bool {
	if path == "" {
		return false
	}

	for _, g := range r.exclude {
		if g.MatchString(path) {
			return true
		}
	}

	return false
}
