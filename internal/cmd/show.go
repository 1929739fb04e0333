package cmd

import (
	"github.com/spf13/cobra"
)

func newShowCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a configuration file",
		Long: `Print a configuration file as the manager sees it. A missing file is
created empty and a file that is not a JSON object shows as {}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			h, err := app.Manager.Open(args[0])
			if err != nil {
				return err
			}
			// Read-only: the handle is dropped without writing back.
			doc, err := app.Manager.Snapshot(h)
			if err != nil {
				return err
			}

			if app.JSON {
				_, err = app.Out.Write(append(doc.Bytes(), '\n'))
				return err
			}
			_, err = app.Out.Write(app.ColorJSON(doc.Pretty()))
			return err
		},
	}
	return cmd
}
