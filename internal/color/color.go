// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset  = "\033[0m"
	prefix = "\033["
	suffix = "m"
)

// Code represents an ANSI SGR parameter.
type Code int

// Text attributes.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = isColorCapable(os.Stderr)

// Enabled reports whether color output was detected as supported at start-up.
// NO_COLOR always disables it, FORCE_COLOR enables it, otherwise stderr must be a terminal.
func Enabled() bool {
	return enabled
}

// Colorize wraps str in the given codes when color output is enabled.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	return Wrap(str, codes...)
}

// Wrap unconditionally wraps str in the given codes followed by a reset.
func Wrap(str string, codes ...Code) string {
	if len(codes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(str) + len(suffix) + len(reset) + 4*len(codes))
	sb.WriteString(prefix)

	for i, c := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(c)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

func isColorCapable(f *os.File) bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return f != nil && term.IsTerminal(int(f.Fd()))
}
