// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package updatecheck tells the user when a newer mbl release is available.
//
// The check runs in the background while the command executes. It consults a release
// feed at most once per interval, caching the answer in a small JSON state file, and
// never fails or delays the command: every error is logged at debug level and dropped.
package updatecheck
