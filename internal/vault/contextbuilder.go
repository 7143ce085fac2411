package vault

import (
	"fmt"
	"strings"

	"github.com/DinN0000/dotbrain/internal/model"
)

// ContextBuilder assembles the vault-state hints handed to the classifier:
// known project names and per-folder summaries.
type ContextBuilder struct {
	mover Mover
}

// NewContextBuilder creates a context builder for the given vault.
func NewContextBuilder(paths Paths) ContextBuilder {
	return ContextBuilder{mover: NewMover(paths)}
}

// ProjectNames returns the names of all current project subfolders.
func (b ContextBuilder) ProjectNames() []string {
	folders := b.mover.ListFolders(model.CategoryProject)
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	return names
}

// ProjectContext renders the project list with summaries as prompt text.
func (b ContextBuilder) ProjectContext() string {
	var sb strings.Builder
	for _, f := range b.mover.ListFolders(model.CategoryProject) {
		if f.Summary != "" {
			fmt.Fprintf(&sb, "- %s: %s\n", f.Name, f.Summary)
		} else {
			fmt.Fprintf(&sb, "- %s\n", f.Name)
		}
	}
	return sb.String()
}

// SubfolderContext renders every category's subfolders with summaries as
// prompt text, so the classifier can target existing folders.
func (b ContextBuilder) SubfolderContext() string {
	var sb strings.Builder
	for _, category := range model.AllCategories() {
		for _, f := range b.mover.ListFolders(category) {
			if f.Summary != "" {
				fmt.Fprintf(&sb, "- [%s] %s: %s\n", category.DisplayName(), f.Name, f.Summary)
			} else {
				fmt.Fprintf(&sb, "- [%s] %s\n", category.DisplayName(), f.Name)
			}
		}
	}
	return sb.String()
}
