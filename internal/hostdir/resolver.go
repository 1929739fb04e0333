// Package hostdir resolves the host application's base installation
// directory, the folder configuration files are stored beneath.
//
// The configuration manager depends only on the Resolver interface, so hosts
// can plug in their own lookup and tests can substitute a fixed directory.
package hostdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnresolved is returned when no base directory can be determined.
var ErrUnresolved = errors.New("host base directory unresolved")

// Resolver returns the host's base installation directory.
type Resolver interface {
	ResolveHostBaseDirectory() (string, error)
}

// Func adapts an ordinary function to Resolver.
type Func func() (string, error)

// ResolveHostBaseDirectory calls f.
func (f Func) ResolveHostBaseDirectory() (string, error) {
	return f()
}

// Static resolves to dir. An empty dir never resolves.
func Static(dir string) Resolver {
	return Func(func() (string, error) {
		if dir == "" {
			return "", ErrUnresolved
		}
		return dir, nil
	})
}

// Env resolves to the value of the named environment variable, read on every
// call.
func Env(name string) Resolver {
	return Func(func() (string, error) {
		dir := os.Getenv(name)
		if dir == "" {
			return "", fmt.Errorf("%s not set: %w", name, ErrUnresolved)
		}
		return dir, nil
	})
}

// Executable resolves to the folder containing the running executable,
// following symlinks.
func Executable() Resolver {
	return Func(func() (string, error) {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locating executable: %w", errors.Join(ErrUnresolved, err))
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe), nil
	})
}

// First tries each resolver in order and returns the first directory found.
func First(resolvers ...Resolver) Resolver {
	return Func(func() (string, error) {
		var errs []error
		for _, r := range resolvers {
			dir, err := r.ResolveHostBaseDirectory()
			if err == nil {
				return dir, nil
			}
			errs = append(errs, err)
		}
		if len(errs) == 0 {
			return "", ErrUnresolved
		}
		return "", errors.Join(errs...)
	})
}
