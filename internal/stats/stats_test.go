package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordActivityNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordActivity(ctx, "a.md", "project", ActionClassified))
	require.NoError(t, store.RecordActivity(ctx, "b.md", "resource", ActionDeduplicated))

	entries, err := store.RecentActivity(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b.md", entries[0].FileName)
	assert.Equal(t, ActionDeduplicated, entries[0].Action)
	assert.Equal(t, "a.md", entries[1].FileName)
	assert.False(t, entries[0].Date.IsZero())
}

func TestRecordActivityCapped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < activityCap+10; i++ {
		require.NoError(t, store.RecordActivity(ctx, "note.md", "area", ActionClassified))
	}

	entries, err := store.RecentActivity(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, activityCap)
}

func TestCounters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cost, err := store.APICost(ctx)
	require.NoError(t, err)
	assert.Zero(t, cost)

	require.NoError(t, store.AddAPICost(ctx, 0.02))
	require.NoError(t, store.AddAPICost(ctx, 0.03))
	require.NoError(t, store.IncrementDuplicates(ctx))
	require.NoError(t, store.IncrementDuplicates(ctx))

	cost, err = store.APICost(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, cost, 1e-9)

	dupes, err := store.DuplicatesFound(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dupes)
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	paths := vault.Paths{Root: root}

	write := func(rel string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	write("1_Project/Alpha/Alpha.md")
	write("1_Project/Alpha/notes.md")
	write("2_Area/Health/Health.md")
	write("3_Resource/Go/Go.md")
	write("3_Resource/.hidden.md")
	write("3_Resource/_drafts/skip.md")
	// 4_Archive intentionally missing.

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.RecordActivity(ctx, "Alpha.md", "project", ActionClassified))
	require.NoError(t, store.AddAPICost(ctx, 0.01))

	stats, err := NewCollector(paths, store).Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalFiles)
	assert.Equal(t, 2, stats.ByCategory[model.CategoryProject])
	assert.Equal(t, 1, stats.ByCategory[model.CategoryArea])
	assert.Equal(t, 1, stats.ByCategory[model.CategoryResource])
	assert.Equal(t, 0, stats.ByCategory[model.CategoryArchive])
	require.Len(t, stats.RecentActivity, 1)
	assert.InDelta(t, 0.01, stats.APICost, 1e-9)
}
