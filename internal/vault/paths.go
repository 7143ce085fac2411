// Package vault implements the on-disk PARA layout: path resolution, inbox
// and folder scanning, note traversal, and folder moves between categories.
package vault

import (
	"path/filepath"

	"github.com/DinN0000/dotbrain/internal/model"
)

// InboxDirName is the staging directory scanned for unorganized files.
const InboxDirName = "_Inbox"

// Paths resolves locations inside a vault root.
type Paths struct {
	Root string
}

// NewPaths creates a path resolver for the given vault root.
func NewPaths(root string) Paths {
	return Paths{Root: root}
}

// Inbox returns the inbox directory path.
func (p Paths) Inbox() string {
	return filepath.Join(p.Root, InboxDirName)
}

// Category returns the directory path for a PARA category.
func (p Paths) Category(c model.PARACategory) string {
	return filepath.Join(p.Root, c.FolderName())
}

// Subfolder returns the path of a named subfolder within a category.
func (p Paths) Subfolder(c model.PARACategory, name string) string {
	return filepath.Join(p.Category(c), name)
}

// IndexNote returns the path of a subfolder's index note, the markdown file
// named after the subfolder itself.
func (p Paths) IndexNote(c model.PARACategory, name string) string {
	return filepath.Join(p.Subfolder(c, name), name+".md")
}
