package build

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jbrahy/ebay-catalog/internal/catalog"
	"github.com/jbrahy/ebay-catalog/internal/domain"
	"github.com/jbrahy/ebay-catalog/internal/publish"
)

// Options are the per-invocation switches from the CLI.
type Options struct {
	// Refresh bypasses the response cache entirely.
	Refresh bool

	// DryRun runs fetch, assembly and render validation in a throwaway
	// directory; the public output is never touched.
	DryRun bool

	// SkipDeploy stops after publish.
	SkipDeploy bool
}

// Service wires the pipeline stages together.
type Service struct {
	source    domain.ListingSource
	assembler *catalog.Builder
	renderer  domain.Renderer
	publisher domain.Publisher
	deployer  domain.Deployer

	seller    domain.Seller
	outputDir string
	logger    *log.Logger
	now       func() time.Time
}

func New(
	source domain.ListingSource,
	assembler *catalog.Builder,
	renderer domain.Renderer,
	publisher domain.Publisher,
	deployer domain.Deployer,
	seller domain.Seller,
	outputDir string,
	logger *log.Logger,
) *Service {
	return &Service{
		source:    source,
		assembler: assembler,
		renderer:  renderer,
		publisher: publisher,
		deployer:  deployer,
		seller:    seller,
		outputDir: outputDir,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one build. Stages run strictly in order and the first error
// aborts the run; the publisher guarantees the live output survives any
// failure before its swap.
func (s *Service) Run(ctx context.Context, opts Options) error {
	runID := uuid.NewString()[:8]
	logger := s.logger.With("run", runID)
	started := s.now()

	logger.Info("starting build", "seller", s.seller.Username,
		"refresh", opts.Refresh, "dry_run", opts.DryRun)

	result, err := s.source.FetchAll(ctx, s.seller.Username, opts.Refresh)
	if err != nil {
		return err
	}
	if len(result.Items) == 0 {
		logger.Warn("seller has no active listings, leaving current output in place")
		return nil
	}

	snapshot := s.assembler.Build(result.Items, s.seller, s.now().UTC())
	logger.Info("catalog assembled",
		"items", snapshot.TotalItems, "categories", len(snapshot.Categories))

	if opts.DryRun {
		if err := s.dryRun(snapshot); err != nil {
			return err
		}
		logger.Info("dry run passed, output untouched")
		return nil
	}

	if err := s.publisher.Publish(snapshot, s.renderer); err != nil {
		return err
	}

	if opts.SkipDeploy {
		logger.Info("deploy skipped by flag")
	} else if err := s.deployer.Deploy(ctx, s.outputDir); err != nil {
		return err
	}

	logger.Info("build complete",
		"elapsed", s.now().Sub(started).Round(time.Millisecond),
		"api_calls", result.APICalls,
		"cache_hits", result.CacheHits,
		"stale_served", result.StaleServed)
	return nil
}

// dryRun renders into a throwaway directory and runs the same completeness
// checks the publisher would.
func (s *Service) dryRun(snapshot domain.Catalog) error {
	scratch, err := os.MkdirTemp("", "catalog-dryrun-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	manifest, err := s.renderer.Render(scratch, snapshot)
	if err != nil {
		return err
	}
	return publish.Validate(scratch, manifest)
}
