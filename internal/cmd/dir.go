package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newDirCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Print the configuration directory",
		Long: `Print the configuration directory, <host>/mods/Configs.
The directory is created if it does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			if err := app.Manager.Create(); err != nil {
				return err
			}
			dir, err := app.Manager.ConfigDirectory()
			if err != nil {
				return err
			}
			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{"dir": dir})
			}
			fmt.Fprintln(app.Out, dir)
			return nil
		},
	}
	return cmd
}
