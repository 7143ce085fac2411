package vault

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// largeFileThreshold triggers a warning log for unusually big inbox files (100MB).
const largeFileThreshold = 100 * 1024 * 1024

// ignoredFiles are OS and editor artifacts skipped during scans.
var ignoredFiles = map[string]struct{}{
	".DS_Store":       {},
	".gitkeep":        {},
	".obsidian":       {},
	"Thumbs.db":       {},
	"desktop.ini":     {},
	".localized":      {},
	".Spotlight-V100": {},
	".Trashes":        {},
	".fseventsd":      {},
	".TemporaryItems": {},
}

// ignoredExtensions are temp-file extensions skipped during scans.
var ignoredExtensions = map[string]struct{}{
	"tmp":  {},
	"swp":  {},
	"lock": {},
	"part": {},
}

// Scanner lists candidate files in the inbox and in category subfolders.
type Scanner struct {
	paths Paths
}

// NewScanner creates a scanner for the given vault.
func NewScanner(paths Paths) Scanner {
	return Scanner{paths: paths}
}

// ScanInbox returns the top-level inbox entries (files and folders) eligible
// for processing, sorted lexicographically by name.
func (s Scanner) ScanInbox() []string {
	inbox := s.paths.Inbox()
	entries, err := os.ReadDir(inbox)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if !shouldInclude(name) {
			continue
		}

		full := filepath.Join(inbox, name)

		// Skip symlinks that resolve outside the vault root.
		if entry.Type()&os.ModeSymlink != 0 {
			resolved, linkErr := filepath.EvalSymlinks(full)
			if linkErr != nil || !s.insideVault(resolved) {
				continue
			}
		}

		if info, statErr := os.Stat(full); statErr == nil && info.Size() > largeFileThreshold {
			slog.Warn("large file in inbox",
				"file", name,
				"size_mb", info.Size()/1024/1024)
		}

		paths = append(paths, full)
	}

	sort.Strings(paths)
	return paths
}

// FilesInFolder returns the plain files directly inside dir, excluding the
// named index note, sorted by name. Subdirectories are skipped.
func (s Scanner) FilesInFolder(dir, indexNoteName string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if !shouldInclude(name) || name == indexNoteName {
			continue
		}
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths
}

// insideVault reports whether the resolved absolute path sits under the vault
// root. A plain prefix check would admit siblings like vault2 next to vault,
// and would break when Root is relative since EvalSymlinks returns absolutes.
func (s Scanner) insideVault(resolved string) bool {
	root, err := filepath.Abs(s.paths.Root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func shouldInclude(name string) bool {
	if _, ok := ignoredFiles[name]; ok {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if _, ok := ignoredExtensions[ext]; ok {
		return false
	}
	return true
}
