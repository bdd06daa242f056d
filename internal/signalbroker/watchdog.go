// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
)

// Watch consumes sigCh until ctx is done or the channel is closed.
// It calls cancel on the second signal of a given type and stops signal delivery to sigCh.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if _, again := seen[sig]; again {
				ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, terminating", "signal", sig.String())
				signal.Stop(sigCh)
				cancel()

				return
			}

			ctxlog.Info(ctx, "watchdog", "detail", "received first signal of type, send again to terminate", "signal", sig.String())

			seen[sig] = struct{}{}
		}
	}
}
