// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package prettify

import (
	"fmt"
	"strings"
)

// ParseErrorPolicy decides what happens to a line that is not valid JSON.
type ParseErrorPolicy int

const (
	// PolicyWarn logs the failure and continues with the next line.
	PolicyWarn ParseErrorPolicy = iota
	// PolicySkip drops the line silently.
	PolicySkip
	// PolicyFail stops processing and returns the *ParseError from Transform.
	PolicyFail
)

// String returns the policy name.
func (p ParseErrorPolicy) String() string {
	switch p {
	case PolicyWarn:
		return "warn"
	case PolicySkip:
		return "skip"
	case PolicyFail:
		return "fail"
	default:
		return fmt.Sprintf("ParseErrorPolicy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name into a ParseErrorPolicy.
func ParsePolicy(s string) (ParseErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return PolicyWarn, nil
	case "skip":
		return PolicySkip, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicyWarn, fmt.Errorf("%w: %q (valid: warn, skip, fail)", ErrUnknownPolicy, s)
	}
}
