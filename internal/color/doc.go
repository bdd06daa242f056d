// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes.
// Detection honours NO_COLOR and FORCE_COLOR, then falls back to checking
// whether stderr is a terminal with golang.org/x/term.
package color
