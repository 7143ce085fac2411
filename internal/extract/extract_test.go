package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nsome content\n"), 0o644))

	got := New().Extract(path)
	assert.Equal(t, "# Title\n\nsome content\n", got)
}

func TestExtractTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("한글ab", 3000)), 0o644))

	e := TextExtractor{MaxLength: 100}
	got := e.Extract(path)
	assert.Equal(t, 100, len([]rune(got)))
}

func TestExtractBinaryExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.PDF")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 ..."), 0o644))

	got := New().Extract(path)
	assert.Equal(t, "[binary file: slides.PDF]", got)
}

func TestExtractBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.dat")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0xff, 0xfe, 'a'}, 0o644))

	got := New().Extract(path)
	assert.Equal(t, "[binary file: blob.dat]", got)
}

func TestExtractUnreadable(t *testing.T) {
	got := New().Extract(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, "[unreadable file: missing.txt]", got)
}
