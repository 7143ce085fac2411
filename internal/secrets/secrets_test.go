package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "creds", "credentials.json"))
	require.NoError(t, err)
	return store
}

func TestFileStoreSetGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("anthropic-api-key", "sk-test-123"))

	value, err := store.Get("anthropic-api-key")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", value)
}

func TestFileStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("gemini-api-key")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStoreOverwrite(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("gemini-api-key", "old"))
	require.NoError(t, store.Set("gemini-api-key", "new"))

	value, err := store.Get("gemini-api-key")
	require.NoError(t, err)
	assert.Equal(t, "new", value)
}

func TestFileStoreDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("anthropic-api-key", "sk-test"))
	require.NoError(t, store.Delete("anthropic-api-key"))

	_, err := store.Get("anthropic-api-key")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Deleting again is a no-op.
	require.NoError(t, store.Delete("anthropic-api-key"))
}

func TestFileStorePermissions(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("anthropic-api-key", "sk-test"))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("anthropic-api-key", "sk-persist"))

	second, err := NewFileStore(path)
	require.NoError(t, err)

	value, err := second.Get("anthropic-api-key")
	require.NoError(t, err)
	assert.Equal(t, "sk-persist", value)
}
