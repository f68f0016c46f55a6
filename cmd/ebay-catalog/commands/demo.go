package commands

import (
	"github.com/spf13/cobra"

	"github.com/jbrahy/ebay-catalog/internal/app"
	"github.com/jbrahy/ebay-catalog/internal/demo"
	buildsvc "github.com/jbrahy/ebay-catalog/internal/services/build"
)

// demo builds the site from generated sample data. No credentials, no
// network, no deploy; useful for styling templates before going live.
func demoCmd() *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the site from generated sample listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := app.NewWire(cfg, logger, demo.NewSource(count, seed))
			if err != nil {
				return err
			}
			defer wire.Close()

			return wire.Build.Run(cmd.Context(), buildsvc.Options{SkipDeploy: true})
		},
	}

	cmd.Flags().IntVar(&count, "count", 40, "number of sample items to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for sample data")
	return cmd
}
