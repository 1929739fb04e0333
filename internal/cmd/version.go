package cmd

import (
	"encoding/json"
	"fmt"

	"modconfigs/internal/configstore"

	"github.com/spf13/cobra"
)

// Version is the current version of modcfg. It can be overridden at build
// time via -ldflags "-X modconfigs/internal/cmd.Version=1.2.3".
var Version = "1.1.0"

func newVersionCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			iface := interfaceVersion()
			if provider.JSONOutput {
				return json.NewEncoder(provider.Out).Encode(map[string]string{
					"version":   Version,
					"interface": iface,
				})
			}
			fmt.Fprintf(provider.Out, "modcfg version %s (interface %s)\n", Version, iface)
			return nil
		},
	}
	return cmd
}

// interfaceVersion formats the version the configuration manager reports
// to its host.
func interfaceVersion() string {
	return fmt.Sprintf("%d.%d.%d", configstore.VersionMajor, configstore.VersionMinor, configstore.VersionPatch)
}
