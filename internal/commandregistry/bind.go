// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commandregistry

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ARMmbed/mbl-cli/internal/commands"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

var (
	// ErrMissingArgument is returned when a required positional or parameter is not supplied.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrInvalidArgument is returned when a positional value cannot be converted to its parameter type.
	ErrInvalidArgument = errors.New("invalid argument")
)

const usageExitCode = 1

// Commands binds every registered descriptor to a urfave/cli command, sorted by name.
func (r *Registry) Commands() []*cli.Command {
	descs := r.Descriptors()
	out := make([]*cli.Command, 0, len(descs))

	for _, d := range descs {
		out = append(out, Bind(d))
	}

	return out
}

// Bind converts a validated descriptor into a urfave/cli command.
// Flags are generated from the schema and positionals are read from the remaining arguments.
func Bind(d *commands.Descriptor) *cli.Command {
	syn, _ := d.Syntax()

	return &cli.Command{
		Name:         syn.Command,
		Usage:        d.Describe,
		ArgsUsage:    syn.Usage(),
		Flags:        flagsFor(d.Builder),
		OnUsageError: OnUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := parseArgs(cmd, d.Builder, syn)
			if err != nil {
				return cli.Exit(fmt.Sprintf("%s: %s", syn.Command, err.Error()), usageExitCode)
			}

			root := cmd.Root()
			ctx = commands.WithStreams(ctx, commands.Streams{
				In:  root.Reader,
				Out: root.Writer,
				Err: root.ErrWriter,
			})

			ctxlog.Debug(ctx, "dispatching command", "command", syn.Command, "path", d.Path)

			if err := d.Handler(ctx, args); err != nil {
				if errors.Is(err, commands.ErrUsage) {
					return cli.Exit(fmt.Errorf("%s: %w", syn.Command, err), usageExitCode)
				}

				return err
			}

			return nil
		},
	}
}

// OnUsageError turns a flag parsing failure into a usage exit error.
// It replaces the framework's own "Incorrect Usage" output so the failure is reported once.
func OnUsageError(_ context.Context, cmd *cli.Command, err error, _ bool) error {
	return cli.Exit(fmt.Sprintf("%s: %s", cmd.Name, err.Error()), usageExitCode)
}

func flagsFor(schema commands.Schema) []cli.Flag {
	flags := make([]cli.Flag, 0, len(schema))

	for _, name := range schema.Names() {
		p := schema[name]

		switch p.Kind() {
		case commands.TypeBool:
			f := &cli.BoolFlag{Name: name, Aliases: p.Aliases, Usage: p.Description, Sources: cli.EnvVars(p.EnvVars...)}
			if v, ok := p.Default.(bool); ok {
				f.Value = v
			}

			flags = append(flags, f)
		case commands.TypeInt:
			f := &cli.IntFlag{Name: name, Aliases: p.Aliases, Usage: p.Description, Sources: cli.EnvVars(p.EnvVars...)}
			if v, ok := p.Default.(int); ok {
				f.Value = v
			}

			flags = append(flags, f)
		case commands.TypeStringSlice:
			f := &cli.StringSliceFlag{Name: name, Aliases: p.Aliases, Usage: p.Description, Sources: cli.EnvVars(p.EnvVars...)}
			if v, ok := p.Default.([]string); ok {
				f.Value = v
			}

			flags = append(flags, f)
		default:
			f := &cli.StringFlag{Name: name, Aliases: p.Aliases, Usage: p.Description, Sources: cli.EnvVars(p.EnvVars...)}
			if v, ok := p.Default.(string); ok {
				f.Value = v
			}

			flags = append(flags, f)
		}
	}

	return flags
}

// parseArgs builds the arguments record. A flag wins over a positional of the same name;
// parameters that were not supplied are only present when they have a default.
func parseArgs(cmd *cli.Command, schema commands.Schema, syn commands.Syntax) (commands.Args, error) {
	args := make(commands.Args)

	for _, name := range schema.Names() {
		p := schema[name]
		if !cmd.IsSet(name) {
			continue
		}

		switch p.Kind() {
		case commands.TypeBool:
			args[name] = cmd.Bool(name)
		case commands.TypeInt:
			args[name] = cmd.Int(name)
		case commands.TypeStringSlice:
			args[name] = cmd.StringSlice(name)
		default:
			args[name] = cmd.String(name)
		}
	}

	rest := cmd.Args().Slice()

	for _, pos := range syn.Positionals {
		if pos.Variadic {
			if len(rest) > 0 && !args.Has(pos.Name) {
				args[pos.Name] = rest
			}

			rest = nil

			break
		}

		if len(rest) == 0 {
			break
		}

		val := rest[0]
		rest = rest[1:]

		if args.Has(pos.Name) {
			continue
		}

		v, err := convert(schema[pos.Name], val)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, pos.Name, err)
		}

		args[pos.Name] = v
	}

	if len(rest) > 0 {
		args[commands.ExtraArgsKey] = rest
	}

	for _, pos := range syn.Positionals {
		if !pos.Optional && !args.Has(pos.Name) {
			return nil, fmt.Errorf("%w: %s", ErrMissingArgument, pos)
		}
	}

	for _, name := range schema.Names() {
		p := schema[name]
		if args.Has(name) {
			continue
		}

		if p.Required {
			return nil, fmt.Errorf("%w: --%s", ErrMissingArgument, name)
		}

		if p.Default != nil {
			args[name] = p.Default
		}
	}

	return args, nil
}

func convert(p commands.Parameter, val string) (any, error) {
	switch p.Kind() {
	case commands.TypeBool:
		return strconv.ParseBool(val)
	case commands.TypeInt:
		return strconv.Atoi(val)
	case commands.TypeStringSlice:
		return []string{val}, nil
	default:
		return val, nil
	}
}
