package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanInbox(t *testing.T) {
	paths := newTestVault(t)
	scanner := NewScanner(paths)
	inbox := paths.Inbox()

	for _, name := range []string{"b.md", "a.md", "report.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(inbox, name), []byte("x"), 0o644))
	}
	// All of these must be skipped.
	for _, name := range []string{".DS_Store", "_staging.md", ".hidden", "draft.tmp", "edit.swp"} {
		require.NoError(t, os.WriteFile(filepath.Join(inbox, name), []byte("x"), 0o644))
	}

	got := scanner.ScanInbox()
	want := []string{
		filepath.Join(inbox, "a.md"),
		filepath.Join(inbox, "b.md"),
		filepath.Join(inbox, "report.pdf"),
	}
	assert.Equal(t, want, got)
}

func TestScanInboxSymlinkOutsideRoot(t *testing.T) {
	paths := newTestVault(t)
	scanner := NewScanner(paths)

	outside := filepath.Join(t.TempDir(), "outside.md")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(paths.Inbox(), "link.md")))

	inside := filepath.Join(paths.Inbox(), "real.md")
	require.NoError(t, os.WriteFile(inside, []byte("x"), 0o644))

	got := scanner.ScanInbox()
	assert.Equal(t, []string{inside}, got)
}

func TestScanInboxSymlinkToSiblingPrefix(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "vault")
	require.NoError(t, os.MkdirAll(filepath.Join(root, InboxDirName), 0o755))

	// vault2 shares the vault prefix but is a different tree.
	sibling := filepath.Join(base, "vault2", "leak.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(sibling), 0o755))
	require.NoError(t, os.WriteFile(sibling, []byte("x"), 0o644))

	paths := NewPaths(root)
	require.NoError(t, os.Symlink(sibling, filepath.Join(paths.Inbox(), "leak.md")))

	got := NewScanner(paths).ScanInbox()
	assert.Empty(t, got)
}

func TestScanInboxSymlinkWithRelativeRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "vault")
	require.NoError(t, os.MkdirAll(filepath.Join(root, InboxDirName), 0o755))

	target := filepath.Join(root, InboxDirName, "real.md")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(base))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	paths := NewPaths("vault")
	require.NoError(t, os.Symlink(target, filepath.Join(paths.Inbox(), "link.md")))

	got := NewScanner(paths).ScanInbox()
	assert.Equal(t, []string{
		filepath.Join(paths.Inbox(), "link.md"),
		filepath.Join(paths.Inbox(), "real.md"),
	}, got)
}

func TestFilesInFolder(t *testing.T) {
	paths := newTestVault(t)
	scanner := NewScanner(paths)

	dir := filepath.Join(paths.Inbox(), "Trip")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"Trip.md", "itinerary.md", "photo.jpg", "_notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got := scanner.FilesInFolder(dir, "Trip.md")
	want := []string{
		filepath.Join(dir, "itinerary.md"),
		filepath.Join(dir, "photo.jpg"),
	}
	assert.Equal(t, want, got)
}

func TestScanInboxMissingDir(t *testing.T) {
	scanner := NewScanner(NewPaths(filepath.Join(t.TempDir(), "nope")))
	assert.Nil(t, scanner.ScanInbox())
}
