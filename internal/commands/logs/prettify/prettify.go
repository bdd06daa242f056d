// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package prettify provides the "prettify [file]" command, which prints the text carried
// by newline-delimited JSON logs such as container build output.
package prettify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ARMmbed/mbl-cli/internal/commandregistry"
	"github.com/ARMmbed/mbl-cli/internal/commands"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	pretty "github.com/ARMmbed/mbl-cli/internal/prettify"
	"github.com/ARMmbed/mbl-cli/internal/source"
)

// Path is the module location used by exclusion patterns.
const Path = "logs/commands/prettify"

const (
	fileParam      = "file"
	fieldParam     = "field"
	policyParam    = "on-parse-error"
	separatorParam = "separator"
	newlineParam   = "newline"
)

// Defaults are the flag defaults, usually taken from the settings file.
type Defaults struct {
	Field        string
	OnParseError string
	Separator    string
}

// Descriptor returns the prettify command descriptor.
func Descriptor(def Defaults) *commands.Descriptor {
	if def.Field == "" {
		def.Field = pretty.DefaultField
	}

	if def.OnParseError == "" {
		def.OnParseError = pretty.PolicyWarn.String()
	}

	return &commands.Descriptor{
		Name:     "prettify [" + fileParam + "]",
		Describe: "Print the text carried by newline-delimited JSON logs",
		Builder: commands.Schema{
			fileParam: {
				Description: "log file or go-getter URL to read, - for stdin",
				Aliases:     []string{"f"},
				Default:     source.Stdin,
			},
			fieldParam: {
				Description: "record field to extract",
				Default:     def.Field,
				EnvVars:     []string{"MBL_PRETTIFY_FIELD"},
			},
			policyParam: {
				Description: "what to do with malformed lines: warn, skip or fail",
				Default:     def.OnParseError,
			},
			separatorParam: {
				Description: "text appended after every extracted value",
				Default:     def.Separator,
			},
			newlineParam: {
				Description: "append a newline after every value that does not end with one",
				Type:        commands.TypeBool,
				Aliases:     []string{"n"},
			},
		},
		Handler: handle,
		Path:    Path,
	}
}

// Register adds the prettify command to r with built-in defaults.
func Register(r *commandregistry.Registry) error {
	return r.Register(Descriptor(Defaults{}))
}

// RegisterWith returns a register function that uses def for the flag defaults.
func RegisterWith(def Defaults) commandregistry.RegisterFunc {
	return func(r *commandregistry.Registry) error {
		return r.Register(Descriptor(def))
	}
}

func handle(ctx context.Context, args commands.Args) error {
	opts, err := options(args)
	if err != nil {
		return err
	}

	location, _ := args.String(fileParam)
	streams := commands.StreamsFrom(ctx)

	in, err := source.Open(ctx, location, streams.In)
	if err != nil {
		return err
	}

	defer in.Close() //nolint:errcheck

	ctxlog.Debug(ctx, "prettifying logs", "source", location)

	out := streams.Out
	if nl, _ := args.Bool(newlineParam); nl {
		out = &newlineWriter{w: out}
	}

	if _, err := pretty.Copy(ctx, out, in, opts...); err != nil {
		var perr *pretty.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s: %w", location, perr)
		}

		return err
	}

	if nw, ok := out.(*newlineWriter); ok {
		return nw.finish()
	}

	return nil
}

func options(args commands.Args) ([]pretty.Option, error) {
	field, _ := args.String(fieldParam)
	sep, _ := args.String(separatorParam)
	policyName, _ := args.String(policyParam)

	policy, err := pretty.ParsePolicy(policyName)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s: %w", commands.ErrUsage, policyParam, err)
	}

	return []pretty.Option{
		pretty.WithField(field),
		pretty.WithSeparator(sep),
		pretty.WithParseErrorPolicy(policy),
	}, nil
}
