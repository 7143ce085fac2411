// Package pipeline wires scanning, deduplication, extraction, classification,
// and filing into the two top-level flows: organizing the inbox and
// reorganizing an existing folder.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DinN0000/dotbrain/internal/frontmatter"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// excerptLength bounds the content sample attached to a pending confirmation.
const excerptLength = 500

// GenerateOptions builds the choice list for a deferred file: the AI's own
// result first, then one alternative per remaining category at neutral
// confidence. The project alternative is seeded with a known project name so
// accepting it files the note somewhere real.
func GenerateOptions(base model.ClassifyResult, projectNames []string) []model.ClassifyResult {
	options := []model.ClassifyResult{base}
	for _, category := range model.AllCategories() {
		if category == base.Category {
			continue
		}
		alt := model.ClassifyResult{
			Category:     category,
			Tags:         base.Tags,
			TargetFolder: base.TargetFolder,
			Summary:      base.Summary,
			Confidence:   0.5,
		}
		if category == model.CategoryProject && len(projectNames) > 0 {
			alt.Project = projectNames[0]
		}
		options = append(options, alt)
	}
	return options
}

// updateInPlace rewrites a note's frontmatter with the classification,
// preserving only the created date and import source. The body is untouched.
func updateInPlace(path string, result model.ClassifyResult) model.ProcessedFileResult {
	fileName := filepath.Base(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("read failed: %v", err))
	}

	existing, body := frontmatter.Parse(string(content))

	fm := frontmatter.Frontmatter{
		Para:    result.Category,
		Tags:    result.Tags,
		Created: existing.Created,
		Status:  model.StatusActive,
		Summary: result.Summary,
		Source:  existing.Source,
		Project: result.Project,
		File:    existing.File,
	}
	if fm.Created == "" {
		fm.Created = frontmatter.Today()
	}
	if fm.Source == "" {
		fm.Source = model.SourceImport
	}

	if err := vault.WriteFileAtomic(path, []byte(frontmatter.Compose(fm, body)), 0o644); err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("write failed: %v", err))
	}

	return model.ProcessedFileResult{
		FileName:   fileName,
		Category:   result.Category,
		TargetPath: path,
		Tags:       result.Tags,
		Kind:       model.ResultClassified,
	}
}

func errorResult(fileName string, result model.ClassifyResult, path, detail string) model.ProcessedFileResult {
	return model.ProcessedFileResult{
		FileName:   fileName,
		Category:   result.Category,
		TargetPath: path,
		Tags:       result.Tags,
		Kind:       model.ResultError,
		Detail:     detail,
	}
}

// uniquePath returns path, or a timestamp-suffixed variant when something
// already sits at path.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s_%d%s", stem, time.Now().Unix(), ext)
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength])
}
