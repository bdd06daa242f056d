// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package updatecheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var noticeStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("11")).
	Padding(0, 1).
	Margin(1, 0)

var highlight = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// Notice renders the advisory box for res. It returns "" when there is nothing to report.
func Notice(res *Result) string {
	if res == nil || !res.Newer {
		return ""
	}

	lines := []string{
		fmt.Sprintf("Update available %s → %s", res.Current, highlight.Render(res.Latest)),
	}

	if res.URL != "" {
		lines = append(lines, "Release notes: "+res.URL)
	}

	return noticeStyle.Render(strings.Join(lines, "\n"))
}

// PrintNotice writes the notice for res to w, if there is one.
func PrintNotice(w io.Writer, res *Result) {
	if s := Notice(res); s != "" {
		fmt.Fprintln(w, s) //nolint:errcheck
	}
}
