package app

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/jbrahy/ebay-catalog/internal/cache"
	"github.com/jbrahy/ebay-catalog/internal/catalog"
	"github.com/jbrahy/ebay-catalog/internal/config"
	"github.com/jbrahy/ebay-catalog/internal/demo"
	"github.com/jbrahy/ebay-catalog/internal/deploy"
	"github.com/jbrahy/ebay-catalog/internal/domain"
	"github.com/jbrahy/ebay-catalog/internal/ebay"
	"github.com/jbrahy/ebay-catalog/internal/publish"
	buildsvc "github.com/jbrahy/ebay-catalog/internal/services/build"
	"github.com/jbrahy/ebay-catalog/internal/site"
)

// Wire bundles the pipeline stages for the CLI.
type Wire struct {
	Build *buildsvc.Service

	cache *cache.Store
}

// NewWire constructs the dependency graph from cfg. The demo flag swaps the
// real listing source for generated sample data; everything downstream stays
// identical.
func NewWire(cfg *config.Config, logger *log.Logger, demoSource *demo.Source) (*Wire, error) {
	w := &Wire{}

	var source domain.ListingSource
	if demoSource != nil {
		source = demoSource
	} else {
		store, err := cache.Open(cfg.Build.CachePath)
		if err != nil {
			return nil, err
		}
		w.cache = store

		source = ebay.NewClient(ebay.Config{
			AppID:               cfg.Ebay.AppID,
			CertID:              cfg.Ebay.CertID,
			Environment:         cfg.Ebay.Environment,
			Marketplace:         cfg.Ebay.Marketplace,
			AffiliateCampaignID: cfg.Site.AffiliateCampaignID,
			CacheTTL:            time.Duration(cfg.Build.CacheTTLMinutes) * time.Minute,
			PageSize:            cfg.Build.PageSize,
			MaxPages:            cfg.Build.MaxPages,
			Timeout:             time.Duration(cfg.Build.RequestTimeoutSeconds) * time.Second,
			MaxRetries:          cfg.Build.MaxRetries,
		}, store, logger)
	}

	assembler := catalog.NewBuilder(cfg.Categories.CustomOrder, cfg.Categories.Hidden)
	renderer := site.New(cfg.Site, cfg.Build, logger)
	publisher := publish.New(cfg.Build.OutputDir, logger)
	deployer := deploy.New(cfg.Deploy, logger)

	w.Build = buildsvc.New(
		source,
		assembler,
		renderer,
		publisher,
		deployer,
		cfg.SellerInfo(),
		cfg.Build.OutputDir,
		logger,
	)
	return w, nil
}

// Close releases resources held by the wired graph.
func (w *Wire) Close() error {
	if w.cache != nil {
		return w.cache.Close()
	}
	return nil
}
