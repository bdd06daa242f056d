// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger in a context.Context.
//
// The default logger writes human-readable lines to stderr through the console handler,
// so that stdout stays free for command output such as prettified log streams.
// The level is read from the MBL_LOG_LEVEL environment variable and may be
// changed later from the settings file or the --log-level flag.
package ctxlog
