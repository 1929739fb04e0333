package cmd

import (
	"encoding/json"
	"fmt"

	"modconfigs/internal/configstore"

	"github.com/spf13/cobra"
)

func newUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <file> <name>",
		Short: "Remove a value from a configuration file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			file, name := args[0], args[1]
			err = withConfig(app, file, func(h configstore.Handle) error {
				return app.Manager.Remove(h, name)
			})
			if err != nil {
				return fmt.Errorf("unset %s %s: %w", file, name, err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]string{
					"file":   file,
					"name":   name,
					"status": configstore.StatusSuccess.String(),
				})
			}
			fmt.Fprintf(app.Out, "%s %s from %s\n", app.SuccessColor("Removed"), name, file)
			return nil
		},
	}
	return cmd
}
