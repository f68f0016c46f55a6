package deploy

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jbrahy/ebay-catalog/internal/config"
	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// RsyncDeployer shells out to rsync. The trailing slash on the source makes
// rsync copy the tree's contents rather than the directory itself.
type RsyncDeployer struct {
	target string
	flags  []string
	logger *log.Logger
}

var _ domain.Deployer = (*RsyncDeployer)(nil)

func NewRsync(cfg config.Deploy, logger *log.Logger) *RsyncDeployer {
	return &RsyncDeployer{target: cfg.RsyncTarget, flags: cfg.RsyncFlags, logger: logger}
}

func (d *RsyncDeployer) Deploy(ctx context.Context, dir string) error {
	args := []string{"-az", "--delete"}
	args = append(args, d.flags...)
	args = append(args, strings.TrimRight(dir, "/")+"/", d.target)

	d.logger.Info("running rsync", "target", d.target)
	cmd := exec.CommandContext(ctx, "rsync", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: rsync: %v: %s", domain.ErrDeploy, err, strings.TrimSpace(string(out)))
	}
	return nil
}
