// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the mbl command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/ARMmbed/mbl-cli/internal/commands"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/ARMmbed/mbl-cli/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	code := run(ctx, os.Args, commands.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})

	cancel()
	os.Exit(code)
}
