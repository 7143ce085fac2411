// Package dedup collapses exact-duplicate files within one directory by
// content fingerprint, merging metadata tags into the retained copy.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/DinN0000/dotbrain/internal/frontmatter"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// Deduplicator removes files whose content fingerprint matches an earlier
// file in the batch.
type Deduplicator struct{}

// New creates a Deduplicator.
func New() Deduplicator {
	return Deduplicator{}
}

// Deduplicate takes file paths in scan order and returns the unique subset
// plus a terminal result for each removed duplicate. The first occurrence of
// a fingerprint is retained; later occurrences have their tags merged into
// the retained note's frontmatter, then are deleted.
func (d Deduplicator) Deduplicate(paths []string, category model.PARACategory) ([]string, []model.ProcessedFileResult) {
	seen := make(map[string]string, len(paths)) // fingerprint -> retained path
	var unique []string
	var results []model.ProcessedFileResult

	for _, path := range paths {
		fp := Fingerprint(path)

		retained, dup := seen[fp]
		if !dup {
			seen[fp] = path
			unique = append(unique, path)
			continue
		}

		mergeTags(path, retained)
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to delete duplicate",
				"path", path,
				"error", err)
		}

		slog.Info("duplicate removed",
			"file", filepath.Base(path),
			"retained", filepath.Base(retained))

		results = append(results, model.ProcessedFileResult{
			FileName:   filepath.Base(path),
			Category:   category,
			TargetPath: retained,
			Kind:       model.ResultDeduplicated,
			Detail:     "duplicate of " + filepath.Base(retained) + ", tags merged",
		})
	}

	return unique, results
}

// Fingerprint computes the content hash used for duplicate detection. For
// markdown notes only the body is hashed, with the metadata block stripped,
// so metadata edits do not defeat deduplication. Unreadable files get a
// random non-colliding placeholder and are treated as unique.
func Fingerprint(path string) string {
	if strings.HasSuffix(path, ".md") {
		if content, err := os.ReadFile(path); err == nil {
			sum := sha256.Sum256([]byte(frontmatter.StripBlock(string(content))))
			return hex.EncodeToString(sum[:])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "unreadable-" + uuid.NewString()
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// mergeTags unions the duplicate's tags into the retained note's
// frontmatter. The write only happens when the merged set actually differs,
// so re-running dedup over an already-merged pair is a no-op.
func mergeTags(dupPath, retainedPath string) {
	dupContent, err := os.ReadFile(dupPath)
	if err != nil {
		return
	}
	retainedContent, err := os.ReadFile(retainedPath)
	if err != nil {
		return
	}

	dupFM, _ := frontmatter.Parse(string(dupContent))
	retainedFM, body := frontmatter.Parse(string(retainedContent))

	merged := unionSorted(retainedFM.Tags, dupFM.Tags)
	if equalSorted(merged, retainedFM.Tags) {
		return
	}

	retainedFM.Tags = merged
	if err := vault.WriteFileAtomic(retainedPath, []byte(frontmatter.Compose(retainedFM, body)), 0o644); err != nil {
		slog.Warn("failed to merge tags",
			"path", retainedPath,
			"error", err)
	}
}

func unionSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		set[t] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func equalSorted(merged, current []string) bool {
	cur := make([]string, len(current))
	copy(cur, current)
	sort.Strings(cur)
	if len(merged) != len(cur) {
		return false
	}
	for i := range merged {
		if merged[i] != cur[i] {
			return false
		}
	}
	return true
}
