package cmd

import (
	"encoding/json"
	"fmt"

	"modconfigs/internal/configstore"

	"github.com/spf13/cobra"
)

func newGetCmd(provider *AppProvider) *cobra.Command {
	var (
		kind  string
		array bool
	)

	cmd := &cobra.Command{
		Use:   "get <file> <name>",
		Short: "Read a value from a configuration file",
		Long: `Read a named value as the given kind. Values are never converted:
reading an integer as a number, or a string of digits as an integer, fails.

Examples:
  modcfg get settings.json retries --kind integer
  modcfg get settings.json tags --kind string --array`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			vk, err := lookupKind(kind)
			if err != nil {
				return err
			}

			file, name := args[0], args[1]
			h, err := app.Manager.Open(file)
			if err != nil {
				return err
			}
			var value any
			if array {
				value, err = vk.readArray(app.Manager, h, name)
			} else {
				value, err = vk.read(app.Manager, h, name)
			}
			if err != nil {
				return fmt.Errorf("get %s %s: %w (%s)", file, name, err, configstore.StatusOf(err))
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(map[string]any{
					"file":  file,
					"name":  name,
					"kind":  vk.name,
					"array": array,
					"value": value,
				})
			}
			if array {
				return printArray(app, value)
			}
			fmt.Fprintln(app.Out, value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "string", "Value kind: integer, number, string, boolean")
	cmd.Flags().BoolVarP(&array, "array", "a", false, "Read an array of the kind")

	return cmd
}

// printArray prints one element per line.
func printArray(app *App, value any) error {
	var err error
	switch vs := value.(type) {
	case []string:
		for _, v := range vs {
			_, err = fmt.Fprintln(app.Out, v)
		}
	case []int64:
		for _, v := range vs {
			_, err = fmt.Fprintln(app.Out, v)
		}
	case []float64:
		for _, v := range vs {
			_, err = fmt.Fprintln(app.Out, v)
		}
	case []bool:
		for _, v := range vs {
			_, err = fmt.Fprintln(app.Out, v)
		}
	default:
		return fmt.Errorf("unexpected array type %T", value)
	}
	return err
}
