// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSyntax is returned when a command name cannot be parsed.
var ErrInvalidSyntax = errors.New("invalid command syntax")

const variadicSuffix = ".."

// Positional is a placeholder in a command name, such as [address] or <file>.
type Positional struct {
	Name     string
	Optional bool
	Variadic bool
}

// String renders the placeholder the way it is written in a command name.
func (p Positional) String() string {
	name := p.Name
	if p.Variadic {
		name += variadicSuffix
	}

	if p.Optional {
		return "[" + name + "]"
	}

	return "<" + name + ">"
}

// Syntax is the parsed form of a command name.
type Syntax struct {
	Command     string
	Positionals []Positional
}

// Usage renders the positional placeholders, e.g. "[address]".
func (s Syntax) Usage() string {
	parts := make([]string, len(s.Positionals))
	for i, p := range s.Positionals {
		parts[i] = p.String()
	}

	return strings.Join(parts, " ")
}

// ParseName parses an invocation syntax string.
// The first token is the command; following tokens are placeholders.
// Square brackets mark optional positionals, angle brackets required ones,
// and a trailing ".." inside the brackets marks the last positional as variadic.
func ParseName(name string) (Syntax, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return Syntax{}, fmt.Errorf("%w: empty name", ErrInvalidSyntax)
	}

	syn := Syntax{Command: fields[0]}
	if strings.ContainsAny(syn.Command, "[]<>") {
		return Syntax{}, fmt.Errorf("%w: %q: command token must come first", ErrInvalidSyntax, name)
	}

	seen := make(map[string]struct{}, len(fields)-1)

	for i, f := range fields[1:] {
		p, err := parsePositional(f)
		if err != nil {
			return Syntax{}, fmt.Errorf("%w: %q: %w", ErrInvalidSyntax, name, err)
		}

		if _, dup := seen[p.Name]; dup {
			return Syntax{}, fmt.Errorf("%w: %q: duplicate positional %q", ErrInvalidSyntax, name, p.Name)
		}

		seen[p.Name] = struct{}{}

		if p.Variadic && i != len(fields)-2 {
			return Syntax{}, fmt.Errorf("%w: %q: only the last positional may be variadic", ErrInvalidSyntax, name)
		}

		if !p.Optional && len(syn.Positionals) > 0 && syn.Positionals[len(syn.Positionals)-1].Optional {
			return Syntax{}, fmt.Errorf("%w: %q: required positional %q follows an optional one", ErrInvalidSyntax, name, p.Name)
		}

		syn.Positionals = append(syn.Positionals, p)
	}

	return syn, nil
}

func parsePositional(tok string) (Positional, error) {
	var p Positional

	switch {
	case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
		p.Optional = true
	case strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
	default:
		return p, fmt.Errorf("placeholder %q must be wrapped in [] or <>", tok)
	}

	inner := tok[1 : len(tok)-1]
	if strings.HasSuffix(inner, variadicSuffix) {
		p.Variadic = true
		inner = strings.TrimSuffix(inner, variadicSuffix)
	}

	if inner == "" || strings.ContainsAny(inner, "[]<>") {
		return p, fmt.Errorf("placeholder %q has an invalid name", tok)
	}

	p.Name = inner

	return p, nil
}
