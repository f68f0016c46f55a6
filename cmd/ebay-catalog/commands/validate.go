package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// validate reports on the loaded configuration without any side effects.
// Config loading itself already ran in PersistentPreRunE, so reaching this
// handler means the file parsed and passed structural validation.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without touching the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("config ok: %s\n", configPath)
			fmt.Printf("  seller:       %s\n", cfg.Seller.Username)
			fmt.Printf("  marketplace:  %s (%s)\n", cfg.Ebay.Marketplace, cfg.Ebay.Environment)
			fmt.Printf("  output:       %s\n", cfg.Build.OutputDir)
			fmt.Printf("  deploy:       %s\n", cfg.Deploy.Method)

			if err := cfg.RequireCredentials(); err != nil {
				fmt.Println("  credentials:  MISSING (set EBAY_APP_ID / EBAY_CERT_ID before building)")
			} else {
				fmt.Println("  credentials:  present")
			}
			if cfg.Site.BaseURL == "" && cfg.Site.GenerateSitemap {
				fmt.Println("  note: sitemap enabled but site.base_url is empty, it will be skipped")
			}

			for name, dir := range map[string]string{
				"build.template_dir": cfg.Build.TemplateDir,
				"build.static_dir":   cfg.Build.StaticDir,
			} {
				if dir == "" {
					continue
				}
				if info, err := os.Stat(dir); err != nil || !info.IsDir() {
					return fmt.Errorf("%w: %s points at %s, which is not a directory", domain.ErrConfig, name, dir)
				}
			}
			return nil
		},
	}
}
