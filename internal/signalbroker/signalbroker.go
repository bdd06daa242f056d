// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays OS termination signals to the running command.
// By default it listens for os.Interrupt, SIGINT, SIGTERM and SIGQUIT.
//
// The first signal of a kind is only logged so that a handler streaming output can
// finish its current chunk; the second signal of the same kind cancels the root context.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New registers a channel for the given signals, or the termination signals when none are given.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
