// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import "strings"

// configFromArgs finds the --config value before flag parsing.
// The settings decide which commands are registered, so they are needed before the
// command tree can be built.
func configFromArgs(argv []string) string {
	if len(argv) == 0 {
		return ""
	}

	args := argv[1:]

	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}

		for _, prefix := range []string{"--" + configFlag, "-" + configFlag} {
			if a == prefix && i+1 < len(args) {
				return args[i+1]
			}

			if v, ok := strings.CutPrefix(a, prefix+"="); ok {
				return v
			}
		}
	}

	return ""
}
