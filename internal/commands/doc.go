// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands defines the contract every mbl subcommand satisfies.
//
// A command module exports a Descriptor: its invocation syntax (e.g. "restart [address]"),
// a one-line description, a parameter schema and a handler. The commandregistry package
// binds descriptors to the CLI front end.
package commands
