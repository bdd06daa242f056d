// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ARMmbed/mbl-cli"
	"github.com/ARMmbed/mbl-cli/internal/commandregistry"
	"github.com/ARMmbed/mbl-cli/internal/commands"
	"github.com/ARMmbed/mbl-cli/internal/commands/app/restart"
	"github.com/ARMmbed/mbl-cli/internal/commands/logs/prettify"
	"github.com/ARMmbed/mbl-cli/internal/ctxlog"
	"github.com/ARMmbed/mbl-cli/internal/settings"
	"github.com/ARMmbed/mbl-cli/internal/updatecheck"
	"github.com/urfave/cli/v3"
)

const (
	appName = "mbl"

	logLevelFlag         = "log-level"
	configFlag           = "config"
	noUpdateNotifierFlag = "no-update-notifier"

	epilogue = "For more information about Mbed Linux, please visit http://mbed.com"

	userQuitMessage = "User quit."
)

// helpTemplate is the default root help with the project epilogue appended.
var helpTemplate = cli.RootCommandHelpTemplate + "\n" + epilogue + "\n"

var (
	lookupEnv = os.LookupEnv

	// noticeWait bounds how long a finished command waits for the update check.
	noticeWait = 500 * time.Millisecond

	newChecker = func(s *settings.Settings) *updatecheck.Checker {
		return updatecheck.NewChecker(mbl.Version, s.UpdateURL(), s.UpdateInterval())
	}
)

// registerFuncs lists every command module compiled into the binary.
func registerFuncs(s *settings.Settings) []commandregistry.RegisterFunc {
	def := prettify.Defaults{
		Field:        s.Prettify.Field,
		OnParseError: s.Prettify.OnParseError,
	}

	if s.Prettify.Separator != nil {
		def.Separator = *s.Prettify.Separator
	}

	return []commandregistry.RegisterFunc{
		restart.Register,
		prettify.RegisterWith(def),
	}
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, argv []string, streams commands.Streams) int {
	path := configFromArgs(argv)
	if path == "" {
		path, _ = lookupEnv(settings.ConfigEnvVar)
	}

	s, err := settings.Load(path)
	if err != nil {
		ctxlog.Error(ctx, "failed to load settings", "error", err.Error())
		return 1
	}

	if err := ctxlog.SetLevel(s.LogLevel); err != nil {
		ctxlog.Warn(ctx, "ignoring log_level from settings", "error", err.Error())
	}

	reg, err := commandregistry.New(commandregistry.WithExclude(s.ExcludeCommands...))
	if err != nil {
		ctxlog.Error(ctx, "invalid exclude_commands in settings", "error", err.Error())
		return 1
	}

	if err := reg.Load(ctx, registerFuncs(s)...); err != nil {
		ctxlog.Error(ctx, "failed to register commands", "error", err.Error())
		return 1
	}

	var updates <-chan *updatecheck.Result

	root := newRootCmd(reg, streams, func(ctx context.Context, cmd *cli.Command) {
		optOut := cmd.Bool(noUpdateNotifierFlag) || !s.UpdateCheckEnabled()
		if updatecheck.Enabled(mbl.Version, optOut, lookupEnv) {
			updates = newChecker(s).Start(ctx)
		}
	})

	err = root.Run(ctx, argv)

	if updates != nil {
		waitCtx, cancel := context.WithTimeout(ctx, noticeWait)
		updatecheck.PrintNotice(streams.Err, updatecheck.Wait(waitCtx, updates))
		cancel()
	}

	return exitCode(ctx, streams, err)
}

func exitCode(ctx context.Context, streams commands.Streams, err error) int {
	if ctx.Err() != nil {
		fmt.Fprintln(streams.Err, userQuitMessage) //nolint:errcheck
		ctxlog.Debug(ctx, "command terminated due to cancellation", "error", ctx.Err().Error())

		return 1
	}

	if err == nil {
		return 0
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			fmt.Fprintln(streams.Err, msg) //nolint:errcheck
		}

		return exitErr.ExitCode()
	}

	ctxlog.Error(ctx, "command execution failed", "error", err.Error())

	return 1
}

func newRootCmd(reg *commandregistry.Registry, streams commands.Streams, before func(context.Context, *cli.Command)) *cli.Command {
	return &cli.Command{
		Name:                          appName,
		Usage:                         "Mbed Linux OS command-line tool",
		UsageText:                     "mbl <command> [arguments]",
		Version:                       fmt.Sprintf("%s (commit: %s)", mbl.Version, mbl.Commit),
		CustomRootCommandHelpTemplate: helpTemplate,
		Reader:                        streams.In,
		Writer:                        streams.Out,
		ErrWriter:                     streams.Err,
		EnableShellCompletion:         true,
		Commands:                      reg.Commands(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "log level: DEBUG, INFO, WARN or ERROR",
				Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
			},
			&cli.StringFlag{
				Name:      configFlag,
				Usage:     "path to the settings file",
				TakesFile: true,
				Sources:   cli.EnvVars(settings.ConfigEnvVar),
			},
			&cli.BoolFlag{
				Name:  noUpdateNotifierFlag,
				Usage: "do not check for a newer release",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.IsSet(logLevelFlag) {
				if err := ctxlog.SetLevel(cmd.String(logLevelFlag)); err != nil {
					return ctx, cli.Exit(err.Error(), 1)
				}
			}

			before(ctx, cmd)

			return ctx, nil
		},
		Action:         rootAction,
		OnUsageError:   commandregistry.OnUsageError,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

// rootAction runs when no registered command matched.
func rootAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		cli.HelpPrinter(cmd.Root().ErrWriter, helpTemplate, cmd)
		return cli.Exit("", 1)
	}

	return cli.Exit(fmt.Sprintf("Unknown command: %s", cmd.Args().First()), 1)
}
