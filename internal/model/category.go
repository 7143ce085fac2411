// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// PARACategory identifies one of the four top-level vault categories.
type PARACategory string

// The four PARA categories, in display order.
const (
	CategoryProject  PARACategory = "project"
	CategoryArea     PARACategory = "area"
	CategoryResource PARACategory = "resource"
	CategoryArchive  PARACategory = "archive"
)

// AllCategories lists every category in its fixed display/iteration order.
// The order is presentational only; no business logic depends on it.
func AllCategories() []PARACategory {
	return []PARACategory{CategoryProject, CategoryArea, CategoryResource, CategoryArchive}
}

// categoryFolders maps each category to its canonical folder name prefix.
var categoryFolders = map[PARACategory]string{
	CategoryProject:  "1_Project",
	CategoryArea:     "2_Area",
	CategoryResource: "3_Resource",
	CategoryArchive:  "4_Archive",
}

// categoryDisplayNames maps each category to its human-readable name.
var categoryDisplayNames = map[PARACategory]string{
	CategoryProject:  "Project",
	CategoryArea:     "Area",
	CategoryResource: "Resource",
	CategoryArchive:  "Archive",
}

// FolderName returns the canonical on-disk folder name for the category.
func (c PARACategory) FolderName() string {
	return categoryFolders[c]
}

// DisplayName returns the human-readable name for the category.
func (c PARACategory) DisplayName() string {
	return categoryDisplayNames[c]
}

// Valid reports whether c is one of the four known categories.
func (c PARACategory) Valid() bool {
	_, ok := categoryFolders[c]
	return ok
}

// ParseCategory converts a user-supplied name ("project", "Area", "1_Project")
// into a PARACategory.
func ParseCategory(s string) (PARACategory, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, c := range AllCategories() {
		if name == string(c) || s == c.FolderName() {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown PARA category: %q", s)
}

// CategoryFromFolder converts a canonical folder name back into its category.
func CategoryFromFolder(folder string) (PARACategory, bool) {
	for c, f := range categoryFolders {
		if f == folder {
			return c, true
		}
	}
	return "", false
}

// CategoryFromPath detects the PARA category from a path that contains a
// category folder segment, if any.
func CategoryFromPath(path string) (PARACategory, bool) {
	for _, c := range AllCategories() {
		folder := c.FolderName()
		if strings.Contains(path, "/"+folder+"/") || strings.HasSuffix(path, "/"+folder) {
			return c, true
		}
	}
	return "", false
}
