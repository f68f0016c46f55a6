package commands

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jbrahy/ebay-catalog/internal/config"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "ebay-catalog",
		Short:         "Generate a static catalog site from an eBay seller's listings",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:           level,
				ReportTimestamp: true,
			})

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to the configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(buildCmd(), demoCmd(), validateCmd())
	return root.Execute()
}
