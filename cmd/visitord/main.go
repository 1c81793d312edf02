package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"visitors/internal/di"
	"visitors/internal/structures"
)

func newRootCmd() *cobra.Command {
	var flags structures.CliFlags

	root := &cobra.Command{
		Use:           "visitord",
		Short:         "Store visitor records as JSON files",
		Long:          "visitord validates visitor entries and keeps each one as a JSON file under the visitors directory, served over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(&flags)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	root.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	root.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stdout")

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
