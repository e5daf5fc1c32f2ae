// Package cli implements the importer command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/schooldirectory/internal/bootstrap"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "importer",
		Short:        "Bulk load school records into the directory",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "Path to the YAML config file")
	cmd.AddCommand(loadCmd(&configPath))
	return cmd
}
