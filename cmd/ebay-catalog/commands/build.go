package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbrahy/ebay-catalog/internal/app"
	buildsvc "github.com/jbrahy/ebay-catalog/internal/services/build"
)

func buildCmd() *cobra.Command {
	var opts buildsvc.Options

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch listings, assemble the catalog and publish the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequireCredentials(); err != nil {
				return err
			}

			wire, err := app.NewWire(cfg, logger, nil)
			if err != nil {
				return err
			}
			defer wire.Close()

			return wire.Build.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the response cache and refetch everything")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "fetch and render into a throwaway directory, leave output untouched")
	cmd.Flags().BoolVar(&opts.SkipDeploy, "skip-deploy", false, "publish locally but skip the deploy step")
	return cmd
}
