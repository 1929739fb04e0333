package cmd

import (
	"fmt"
	"strings"

	"modconfigs/internal/configstore"

	"github.com/spf13/cast"
)

// valueKind binds a --kind name to the manager's typed accessors. Values
// are carried as any so commands can print them uniformly.
type valueKind struct {
	name       string
	read       func(m *configstore.Manager, h configstore.Handle, name string) (any, error)
	readArray  func(m *configstore.Manager, h configstore.Handle, name string) (any, error)
	write      func(m *configstore.Manager, h configstore.Handle, name, arg string) error
	writeArray func(m *configstore.Manager, h configstore.Handle, name string, args []string) error
}

var valueKinds = []valueKind{
	{
		name: "integer",
		read: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadInteger(h, name))
		},
		readArray: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadIntegerArray(h, name))
		},
		write: func(m *configstore.Manager, h configstore.Handle, name, arg string) error {
			v, err := cast.ToInt64E(arg)
			if err != nil {
				return fmt.Errorf("%q is not an integer", arg)
			}
			return m.WriteInteger(h, name, v)
		},
		writeArray: func(m *configstore.Manager, h configstore.Handle, name string, args []string) error {
			vs, err := convertAll(args, cast.ToInt64E)
			if err != nil {
				return err
			}
			return m.WriteIntegerArray(h, name, vs)
		},
	},
	{
		name: "number",
		read: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadNumber(h, name))
		},
		readArray: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadNumberArray(h, name))
		},
		write: func(m *configstore.Manager, h configstore.Handle, name, arg string) error {
			v, err := cast.ToFloat64E(arg)
			if err != nil {
				return fmt.Errorf("%q is not a number", arg)
			}
			return m.WriteNumber(h, name, v)
		},
		writeArray: func(m *configstore.Manager, h configstore.Handle, name string, args []string) error {
			vs, err := convertAll(args, cast.ToFloat64E)
			if err != nil {
				return err
			}
			return m.WriteNumberArray(h, name, vs)
		},
	},
	{
		name: "string",
		read: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadString(h, name))
		},
		readArray: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadStringArray(h, name))
		},
		write: func(m *configstore.Manager, h configstore.Handle, name, arg string) error {
			return m.WriteString(h, name, arg)
		},
		writeArray: func(m *configstore.Manager, h configstore.Handle, name string, args []string) error {
			return m.WriteStringArray(h, name, args)
		},
	},
	{
		name: "boolean",
		read: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadBoolean(h, name))
		},
		readArray: func(m *configstore.Manager, h configstore.Handle, name string) (any, error) {
			return boxed(m.ReadBooleanArray(h, name))
		},
		write: func(m *configstore.Manager, h configstore.Handle, name, arg string) error {
			v, err := cast.ToBoolE(arg)
			if err != nil {
				return fmt.Errorf("%q is not a boolean", arg)
			}
			return m.WriteBoolean(h, name, v)
		},
		writeArray: func(m *configstore.Manager, h configstore.Handle, name string, args []string) error {
			vs, err := convertAll(args, cast.ToBoolE)
			if err != nil {
				return err
			}
			return m.WriteBooleanArray(h, name, vs)
		},
	},
}

// lookupKind finds the valueKind for a --kind flag value.
func lookupKind(name string) (valueKind, error) {
	switch strings.ToLower(name) {
	case "int":
		name = "integer"
	case "real", "float":
		name = "number"
	case "str":
		name = "string"
	case "bool":
		name = "boolean"
	}
	names := make([]string, 0, len(valueKinds))
	for _, k := range valueKinds {
		if k.name == strings.ToLower(name) {
			return k, nil
		}
		names = append(names, k.name)
	}
	return valueKind{}, fmt.Errorf("unknown kind %q (valid: %s)", name, strings.Join(names, ", "))
}

func boxed[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func convertAll[T any](args []string, conv func(any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(args))
	for _, arg := range args {
		v, err := conv(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid element %q: %w", arg, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// withConfig opens filename, runs fn against it and closes it again,
// writing any changes fn made.
func withConfig(app *App, filename string, fn func(h configstore.Handle) error) error {
	h, err := app.Manager.Open(filename)
	if err != nil {
		return err
	}
	if err := fn(h); err != nil {
		// Leave the file as it was.
		return err
	}
	return app.Manager.Close(h)
}
