// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package restart provides the "restart [address]" device command.
// Restarting the application on a device needs the device communication layer,
// which mbl does not have yet, so the handler is a placeholder.
package restart

import (
	"github.com/ARMmbed/mbl-cli/internal/commandregistry"
	"github.com/ARMmbed/mbl-cli/internal/commands"
)

const (
	// Path is the module location used by exclusion patterns.
	Path = "app/commands/restart"

	addressParam = "address"
)

// Descriptor returns the restart command descriptor.
func Descriptor() *commands.Descriptor {
	return &commands.Descriptor{
		Name:     "restart [" + addressParam + "]",
		Describe: "Restart the application",
		Builder: commands.Schema{
			addressParam: {
				Description: "address of the device",
				Aliases:     []string{"a"},
			},
		},
		Handler: commands.NotImplemented(),
		Path:    Path,
	}
}

// Register adds the restart command to r.
func Register(r *commandregistry.Registry) error {
	return r.Register(Descriptor())
}
