package stats

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// Collector builds a statistics snapshot from the vault on disk plus the
// persisted counters.
type Collector struct {
	paths vault.Paths
	store *Store
}

// NewCollector creates a Collector for the vault at paths backed by store.
func NewCollector(paths vault.Paths, store *Store) *Collector {
	return &Collector{paths: paths, store: store}
}

// Collect counts files per category concurrently and merges in the activity
// log and counters.
func (c *Collector) Collect(ctx context.Context) (model.Statistics, error) {
	stats := model.Statistics{
		ByCategory: make(map[model.PARACategory]int, len(model.AllCategories())),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, category := range model.AllCategories() {
		category := category
		g.Go(func() error {
			count, err := countFiles(gctx, c.paths.Category(category))
			if err != nil {
				return err
			}
			mu.Lock()
			stats.ByCategory[category] = count
			stats.TotalFiles += count
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Statistics{}, err
	}

	activity, err := c.store.RecentActivity(ctx)
	if err != nil {
		return model.Statistics{}, err
	}
	stats.RecentActivity = activity

	if stats.APICost, err = c.store.APICost(ctx); err != nil {
		return model.Statistics{}, err
	}
	if stats.DuplicatesFound, err = c.store.DuplicatesFound(ctx); err != nil {
		return model.Statistics{}, err
	}
	return stats, nil
}

// countFiles counts regular files under root, skipping hidden and
// underscore-prefixed names. A missing category folder counts as zero.
func countFiles(ctx context.Context, root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		hidden := strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
		if d.IsDir() {
			if path != root && hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if !hidden {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
