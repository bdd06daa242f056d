// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry holds the command descriptors known to the CLI and binds
// them to urfave/cli commands.
//
// Registration is explicit: each command package exports a Register function and main
// passes them to Load. Descriptors whose Path matches an exclusion glob are skipped,
// which is how internal or experimental command trees are kept out of the front end.
package commandregistry
