// Package cmd implements the modcfg command-line interface.
package cmd

import (
	"io"
	"os"

	"modconfigs/internal/configstore"

	"github.com/spf13/afero"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

// App holds application state shared across commands.
type App struct {
	Manager *configstore.Manager
	Fs      afero.Fs
	Out     io.Writer
	Err     io.Writer
	JSON    bool // output in JSON format
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if a.isTerminal() {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a terminal,
// otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if a.isTerminal() {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}

// ColorJSON syntax-highlights JSON if stdout is a terminal.
func (a *App) ColorJSON(b []byte) []byte {
	if a.isTerminal() {
		return pretty.Color(b, nil)
	}
	return b
}

func (a *App) isTerminal() bool {
	f, ok := a.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
