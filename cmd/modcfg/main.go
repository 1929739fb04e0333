// modcfg inspects and edits mod configuration files.
package main

import (
	"fmt"
	"os"

	"modconfigs/internal/cmd"
)

var (
	run    = func() error { return cmd.Execute() }
	osExit = os.Exit
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
