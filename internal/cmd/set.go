package cmd

import (
	"encoding/json"
	"fmt"

	"modconfigs/internal/configstore"

	"github.com/spf13/cobra"
)

func newSetCmd(provider *AppProvider) *cobra.Command {
	var (
		kind  string
		array bool
	)

	cmd := &cobra.Command{
		Use:   "set <file> <name> <value>...",
		Short: "Write a value to a configuration file",
		Long: `Write a named value, replacing whatever was stored under that name.
With --array every remaining argument becomes one element; no values writes
an empty array. The file is created if it does not exist.

Examples:
  modcfg set settings.json retries 3 --kind integer
  modcfg set settings.json tags a b --kind string --array`,
		Args: func(cmd *cobra.Command, args []string) error {
			if array {
				return cobra.MinimumNArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			vk, err := lookupKind(kind)
			if err != nil {
				return err
			}

			file, name, values := args[0], args[1], args[2:]
			err = withConfig(app, file, func(h configstore.Handle) error {
				if array {
					return vk.writeArray(app.Manager, h, name, values)
				}
				return vk.write(app.Manager, h, name, values[0])
			})
			if err != nil {
				return fmt.Errorf("set %s %s: %w", file, name, err)
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"file":   file,
					"name":   name,
					"kind":   vk.name,
					"status": configstore.StatusSuccess.String(),
				})
			}
			fmt.Fprintf(app.Out, "%s %s in %s\n", app.SuccessColor("Set"), name, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "string", "Value kind: integer, number, string, boolean")
	cmd.Flags().BoolVarP(&array, "array", "a", false, "Write the values as an array")

	return cmd
}
