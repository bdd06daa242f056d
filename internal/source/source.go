// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package source opens log input named on the command line. Locations are local paths or
// Hashicorp go-getter URLs (see https://github.com/hashicorp/go-getter).
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// Stdin is the location that selects standard input.
const Stdin = "-"

// ErrOpen is returned when a location cannot be opened.
var ErrOpen = errors.New("failed to open input")

// Open returns a reader for location. Local files are streamed in place; anything else is
// fetched with go-getter into a temporary directory that is removed on Close.
// Stdin returns stdin wrapped so that closing it is a no-op.
func Open(ctx context.Context, location string, stdin io.Reader) (io.ReadCloser, error) {
	switch location {
	case "":
		return nil, fmt.Errorf("%w: empty location", ErrOpen)
	case Stdin:
		return io.NopCloser(stdin), nil
	}

	if fi, err := os.Stat(location); err == nil && !fi.IsDir() {
		f, err := os.Open(location)
		if err != nil {
			return nil, errors.Join(ErrOpen, err)
		}

		return f, nil
	}

	return fetch(ctx, location)
}

type tempFile struct {
	*os.File
	dir string
}

func (f *tempFile) Close() error {
	return errors.Join(f.File.Close(), os.RemoveAll(f.dir))
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	tmpDir, err := os.MkdirTemp("", "mbl-getter-*")
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}

	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	wd, err := os.Getwd()
	if err != nil {
		cleanup()
		return nil, errors.Join(ErrOpen, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Getters other than file fetch directories, so the file name is split off and read
	// from the download. https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			cleanup()
			return nil, errors.Join(ErrOpen, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			cleanup()
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrOpen, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		cleanup()
		return nil, errors.Join(ErrOpen, err)
	}

	f, err := os.Open(filepath.Join(res.Dst, fileName))
	if err != nil {
		cleanup()
		return nil, errors.Join(ErrOpen, err)
	}

	return &tempFile{File: f, dir: tmpDir}, nil
}

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3 // scheme, host and path
)

// splitFileNameFromGetterURL returns the getter URL of the directory holding the file, and
// the file name. A ref query parameter is carried over to the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, getterRefSeparator); ok {
		ref = strings.ReplaceAll(after, getterRefSeparator, "")
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, getterPathSeparator)
	if ref != "" {
		newURL += getterRefSeparator + ref
	}

	return newURL, fileName
}
