package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DinN0000/dotbrain/internal/frontmatter"
	"github.com/DinN0000/dotbrain/internal/model"
)

// Structural move failures.
var (
	ErrNotFound      = errors.New("folder not found")
	ErrAlreadyExists = errors.New("folder already exists")
)

// CompletedMarker is the literal suffix appended to a reference token when
// the referenced folder is archived.
const CompletedMarker = " (완료됨)"

// FolderInfo describes one subfolder of a category.
type FolderInfo struct {
	Name      string
	FileCount int
	Summary   string
}

// Mover relocates folders between PARA categories and keeps note metadata
// and cross-references consistent.
type Mover struct {
	paths Paths
}

// NewMover creates a mover for the given vault.
func NewMover(paths Paths) Mover {
	return Mover{paths: paths}
}

// MoveFolder moves a named folder from one category to another. Every
// contained note's frontmatter is rewritten (category and status) before the
// physical move, so a failure mid-rewrite leaves the folder in place. Archive
// moves mark reference tokens vault-wide; un-archiving unmarks them. Returns
// the number of notes updated.
func (m Mover) MoveFolder(ctx context.Context, name string, from, to model.PARACategory) (int, error) {
	safeName := SanitizeName(name)
	sourceDir := m.paths.Subfolder(from, safeName)

	if _, err := os.Stat(sourceDir); err != nil {
		return 0, fmt.Errorf("%q in %s: %w", safeName, from.DisplayName(), ErrNotFound)
	}

	status := model.StatusActive
	if to == model.CategoryArchive {
		status = model.StatusCompleted
	}

	updated, err := m.updateAllNotes(ctx, sourceDir, status, to)
	if err != nil {
		return 0, fmt.Errorf("failed to update notes in %q: %w", safeName, err)
	}

	destDir := m.paths.Subfolder(to, safeName)
	if _, err := os.Stat(destDir); err == nil {
		// Name collision: suffix rather than overwrite or fail.
		suffixed := fmt.Sprintf("%s_%d", safeName, time.Now().Unix())
		slog.Info("destination exists, using suffixed name",
			"folder", safeName,
			"renamed", suffixed)
		destDir = m.paths.Subfolder(to, suffixed)
	}

	if err := os.Rename(sourceDir, destDir); err != nil {
		return 0, fmt.Errorf("failed to move folder %q: %w", safeName, err)
	}

	switch {
	case to == model.CategoryArchive:
		m.markReferences(ctx, safeName)
	case from == model.CategoryArchive:
		m.unmarkReferences(ctx, safeName)
	}

	return updated, nil
}

// ListFolders enumerates the immediate subfolders of a category, with a file
// count and the summary from each folder's index note when present.
func (m Mover) ListFolders(category model.PARACategory) []FolderInfo {
	base := m.paths.Category(category)
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
		byName[entry.Name()] = entry
	}
	sort.Strings(names)

	var folders []FolderInfo
	for _, name := range names {
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if !byName[name].IsDir() {
			continue
		}

		dir := filepath.Join(base, name)

		count := 0
		indexNote := name + ".md"
		if files, readErr := os.ReadDir(dir); readErr == nil {
			for _, f := range files {
				fn := f.Name()
				if strings.HasPrefix(fn, ".") || strings.HasPrefix(fn, "_") || fn == indexNote {
					continue
				}
				count++
			}
		}

		summary := ""
		if content, readErr := os.ReadFile(m.paths.IndexNote(category, name)); readErr == nil {
			fm, _ := frontmatter.Parse(string(content))
			summary = fm.Summary
		}

		folders = append(folders, FolderInfo{Name: name, FileCount: count, Summary: summary})
	}

	return folders
}

// SanitizeName makes a user-supplied folder name safe to join onto a vault
// path: traversal segments are dropped, control characters stripped, each
// segment capped at 255 characters, and at most 3 segments kept.
func SanitizeName(name string) string {
	var segments []string
	for _, seg := range strings.Split(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if r < 0x20 || r == 0x7f {
				return -1
			}
			return r
		}, seg)
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == "" {
			continue
		}
		if utf8.RuneCountInString(cleaned) > 255 {
			runes := []rune(cleaned)
			cleaned = string(runes[:255])
		}
		segments = append(segments, cleaned)
		if len(segments) == 3 {
			break
		}
	}
	return strings.Join(segments, "/")
}

func (m Mover) updateAllNotes(ctx context.Context, dir string, status model.NoteStatus, para model.PARACategory) (int, error) {
	count := 0
	err := WalkNotes(ctx, dir, func(path string) error {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		fm, body := frontmatter.Parse(string(content))
		fm.Status = status
		fm.Para = para

		if writeErr := WriteFileAtomic(path, []byte(frontmatter.Compose(fm, body)), 0o644); writeErr != nil {
			return writeErr
		}
		count++
		return nil
	})
	return count, err
}

// markReferences appends the completion marker to every reference token of
// the folder. Content is normalized first (existing markers stripped) so
// repeated invocations never stack markers.
func (m Mover) markReferences(ctx context.Context, folderName string) {
	token := "[[" + folderName + "]]"
	m.rewriteReferences(ctx, func(content string) string {
		normalized := strings.ReplaceAll(content, token+CompletedMarker, token)
		return strings.ReplaceAll(normalized, token, token+CompletedMarker)
	})
}

// unmarkReferences strips the completion marker from every reference token
// of the folder.
func (m Mover) unmarkReferences(ctx context.Context, folderName string) {
	token := "[[" + folderName + "]]"
	m.rewriteReferences(ctx, func(content string) string {
		return strings.ReplaceAll(content, token+CompletedMarker, token)
	})
}

// rewriteReferences applies rewrite to every note across all four categories.
//
// Matching is plain substring replacement: a folder name that is a prefix of
// another folder's name will cross-match its references. Known gap.
func (m Mover) rewriteReferences(ctx context.Context, rewrite func(string) string) {
	for _, category := range model.AllCategories() {
		err := WalkNotes(ctx, m.paths.Category(category), func(path string) error {
			content, readErr := os.ReadFile(path)
			if readErr != nil {
				return nil
			}

			updated := rewrite(string(content))
			if updated == string(content) {
				return nil
			}

			if writeErr := WriteFileAtomic(path, []byte(updated), 0o644); writeErr != nil {
				slog.Warn("failed to rewrite reference",
					"path", path,
					"error", writeErr)
			}
			return nil
		})
		if err != nil {
			return
		}
	}
}
