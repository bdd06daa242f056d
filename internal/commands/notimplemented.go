// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"fmt"

	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
)

// NotImplementedMessage prefixes the log line written by placeholder handlers.
const NotImplementedMessage = "command not implemented"

// NotImplemented returns a placeholder handler. It logs the arguments it received
// and returns nil, so invoking the command exits successfully.
func NotImplemented() Handler {
	return func(ctx context.Context, args Args) error {
		ctxlog.Warn(ctx, fmt.Sprintf("%s %s", NotImplementedMessage, args.JSON()))
		return nil
	}
}
