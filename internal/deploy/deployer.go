package deploy

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/jbrahy/ebay-catalog/internal/config"
	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// New selects the deployer for the configured method. Config validation has
// already guaranteed the method is one of none, s3, rsync.
func New(cfg config.Deploy, logger *log.Logger) domain.Deployer {
	switch cfg.Method {
	case "s3":
		return NewS3(cfg, logger)
	case "rsync":
		return NewRsync(cfg, logger)
	default:
		return noop{logger: logger}
	}
}

type noop struct {
	logger *log.Logger
}

func (n noop) Deploy(context.Context, string) error {
	n.logger.Debug("deploy method is none, skipping")
	return nil
}
