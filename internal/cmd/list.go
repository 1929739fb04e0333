package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			dir, err := app.Manager.ConfigDirectory()
			if err != nil {
				return err
			}
			infos, err := afero.ReadDir(app.Fs, dir)
			if err != nil {
				return fmt.Errorf("reading %s: %w", dir, err)
			}

			// Hidden files include in-flight temp files from an atomic write.
			files := []string{}
			for _, info := range infos {
				if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
					continue
				}
				files = append(files, info.Name())
			}

			if app.JSON {
				return json.NewEncoder(app.Out).Encode(files)
			}
			if len(files) == 0 {
				fmt.Fprintln(app.Out, app.WarnColor("No configuration files."))
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(app.Out, f)
			}
			return nil
		},
	}
	return cmd
}
