// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidDescriptor is returned when a descriptor does not satisfy the command contract.
	ErrInvalidDescriptor = errors.New("invalid command descriptor")
	// ErrUsage is wrapped by handler errors caused by bad argument values.
	// The registry reports them as usage errors rather than runtime failures.
	ErrUsage = errors.New("invalid usage")
)

// ParamType is the value type of a parameter.
type ParamType string

// Supported parameter types. The zero value behaves as TypeString.
const (
	TypeString      ParamType = "string"
	TypeBool        ParamType = "bool"
	TypeInt         ParamType = "int"
	TypeStringSlice ParamType = "string-slice"
)

// Parameter describes one command parameter.
type Parameter struct {
	// Description is shown in the per-command help.
	Description string
	// Type defaults to TypeString.
	Type ParamType
	// Default is used when the parameter is not supplied. It must match Type.
	Default any
	// Required parameters must be supplied as a flag, a positional or an environment variable.
	Required bool
	// Aliases are alternative flag names, e.g. "a" for -a.
	Aliases []string
	// EnvVars are environment variables that can supply the value.
	EnvVars []string
}

// Kind returns the effective type of the parameter.
func (p Parameter) Kind() ParamType {
	if p.Type == "" {
		return TypeString
	}

	return p.Type
}

func (p Parameter) validate(name string) error {
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("parameter %q has no description", name)
	}

	var ok bool

	switch p.Kind() {
	case TypeString:
		_, ok = p.Default.(string)
	case TypeBool:
		_, ok = p.Default.(bool)
	case TypeInt:
		_, ok = p.Default.(int)
	case TypeStringSlice:
		_, ok = p.Default.([]string)
	default:
		return fmt.Errorf("parameter %q has unsupported type %q", name, p.Type)
	}

	if p.Default != nil && !ok {
		return fmt.Errorf("parameter %q default %v is not a %s", name, p.Default, p.Kind())
	}

	return nil
}

// Schema maps parameter names to their configuration.
type Schema map[string]Parameter

// Names returns the parameter names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}

	slices.Sort(names)

	return names
}

// Args is the parsed arguments record passed to a handler.
// Parameters the user did not supply, and that have no default, are absent.
type Args map[string]any

// ExtraArgsKey holds positional values beyond the declared placeholders.
const ExtraArgsKey = "_"

// Has reports whether name was supplied.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string value of name.
func (a Args) String(name string) (string, bool) {
	v, ok := a[name].(string)
	return v, ok
}

// Bool returns the bool value of name.
func (a Args) Bool(name string) (bool, bool) {
	v, ok := a[name].(bool)
	return v, ok
}

// Int returns the int value of name.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// Strings returns the string slice value of name.
func (a Args) Strings(name string) ([]string, bool) {
	v, ok := a[name].([]string)
	return v, ok
}

// JSON serialises the record with sorted keys. An empty record is "{}".
func (a Args) JSON() string {
	if len(a) == 0 {
		return "{}"
	}

	b, err := json.Marshal(map[string]any(a))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(a))
	}

	return string(b)
}

// Handler runs a command with its parsed arguments.
// Handlers must tolerate missing optional parameters.
type Handler func(ctx context.Context, args Args) error

// Descriptor is the contract every subcommand satisfies so that the registry can
// list, document and invoke it uniformly.
type Descriptor struct {
	// Name is the invocation syntax, e.g. "restart [address]".
	Name string
	// Describe is the one-line help text.
	Describe string
	// Builder is the parameter schema.
	Builder Schema
	// Handler is invoked with the parsed arguments.
	Handler Handler
	// Path locates the command module, e.g. "app/commands/restart". Exclusion globs match against it.
	Path string
}

// Syntax parses the descriptor name.
func (d *Descriptor) Syntax() (Syntax, error) {
	return ParseName(d.Name)
}

// Token returns the leading token of the name, or "" if there is none.
func (d *Descriptor) Token() string {
	fields := strings.Fields(d.Name)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// Validate checks the descriptor against the command contract.
func (d *Descriptor) Validate() error {
	syn, err := d.Syntax()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	if strings.TrimSpace(d.Describe) == "" {
		return fmt.Errorf("%w: %q has no description", ErrInvalidDescriptor, syn.Command)
	}

	if d.Handler == nil {
		return fmt.Errorf("%w: %q has no handler", ErrInvalidDescriptor, syn.Command)
	}

	for _, name := range d.Builder.Names() {
		if name == ExtraArgsKey || strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: %q has a reserved or empty parameter name %q", ErrInvalidDescriptor, syn.Command, name)
		}

		if err := d.Builder[name].validate(name); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidDescriptor, syn.Command, err)
		}
	}

	for _, p := range syn.Positionals {
		param, ok := d.Builder[p.Name]
		if !ok {
			continue
		}

		if p.Variadic && param.Kind() != TypeStringSlice {
			return fmt.Errorf("%w: %q: variadic positional %q must be a %s parameter",
				ErrInvalidDescriptor, syn.Command, p.Name, TypeStringSlice)
		}
	}

	return nil
}
