package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yigit/schooldirectory/internal/app/services"
	"github.com/yigit/schooldirectory/internal/bootstrap"
	"github.com/yigit/schooldirectory/internal/importer"
)

func loadCmd(configPath *string) *cobra.Command {
	var reset bool

	c := &cobra.Command{
		Use:   "load FILE...",
		Short: "Load JSON documents of school records",
		Long: `Load one or more JSON documents. A document is either an array of school
records or an object with a "schools" array. Records that fail validation or
collide with existing ids and codes are reported and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}

			store, err := bootstrap.SetupStore(ctx, cfg, lgr)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := services.NewServices(store.Repos)
			report, err := importer.New(svc.Schools, lgr).ImportFiles(ctx, args, importer.Options{Reset: reset})

			fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			if err != nil {
				return fmt.Errorf("import aborted: %w", err)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&reset, "reset", false, "Delete every existing school before loading")
	return c
}
