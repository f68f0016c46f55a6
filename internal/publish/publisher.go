package publish

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/jbrahy/ebay-catalog/internal/domain"
)

// Publisher swaps rendered output into the target directory atomically.
type Publisher struct {
	target string
	logger *log.Logger
}

var _ domain.Publisher = (*Publisher)(nil)

func New(target string, logger *log.Logger) *Publisher {
	return &Publisher{target: target, logger: logger}
}

// Publish renders the catalog into a scratch directory beside the target,
// validates it, then swaps it in. The previous output survives any failure
// before the swap; a failure during the swap restores it.
func (p *Publisher) Publish(c domain.Catalog, r domain.Renderer) error {
	parent := filepath.Dir(p.target)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	// Same filesystem as the target, so the final rename is atomic.
	scratch, err := os.MkdirTemp(parent, filepath.Base(p.target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	manifest, err := r.Render(scratch, c)
	if err != nil {
		os.RemoveAll(scratch)
		return err
	}

	if err := Validate(scratch, manifest); err != nil {
		os.RemoveAll(scratch)
		return err
	}

	if err := p.swap(scratch); err != nil {
		// Scratch is kept for diagnosis; the error says where.
		return fmt.Errorf("%w: swap failed, scratch kept at %s: %v", domain.ErrPublish, scratch, err)
	}

	p.logger.Info("published", "target", p.target, "pages", len(manifest))
	return nil
}

// Validate checks that a rendered tree is complete: a non-empty manifest,
// an index page, and every manifest entry present and non-empty on disk.
func Validate(dir string, manifest []string) error {
	if len(manifest) == 0 {
		return fmt.Errorf("%w: renderer produced no files", domain.ErrPublish)
	}
	hasIndex := false
	for _, rel := range manifest {
		if rel == "index.html" {
			hasIndex = true
		}
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("%w: manifest entry %s: %v", domain.ErrPublish, rel, err)
		}
		if info.Size() == 0 {
			return fmt.Errorf("%w: manifest entry %s is empty", domain.ErrPublish, rel)
		}
	}
	if !hasIndex {
		return fmt.Errorf("%w: rendered tree has no index.html", domain.ErrPublish)
	}
	return nil
}

// swap moves scratch into the target's place. os.Rename cannot replace a
// non-empty directory, so the current target is renamed aside first and
// restored if the second rename fails.
func (p *Publisher) swap(scratch string) error {
	old := p.target + ".old"

	// A run killed between the two renames leaves the parked tree behind;
	// clear it first so the rename below cannot collide with it.
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("removing stale %s: %v", old, err)
	}

	hadPrevious := true
	if err := os.Rename(p.target, old); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		hadPrevious = false
	}

	if err := os.Rename(scratch, p.target); err != nil {
		if hadPrevious {
			if restoreErr := os.Rename(old, p.target); restoreErr != nil {
				return fmt.Errorf("%v (restore also failed: %v, previous output at %s)", err, restoreErr, old)
			}
		}
		return err
	}

	if err := os.RemoveAll(old); err != nil {
		p.logger.Warn("could not remove previous output", "path", old, "err", err)
	}
	return nil
}
