package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/DinN0000/dotbrain/internal/model"
)

const (
	classifyBatchSize = 5
	classifyMaxTokens = 4096
)

// ContextHints carries vault knowledge into the classification prompt so the
// model can route files toward folders that already exist.
type ContextHints struct {
	ProjectContext   string
	SubfolderContext string
}

// Classifier turns file candidates into PARA classifications, batching
// requests to keep token usage bounded.
type Classifier struct {
	service   *Service
	batchSize int
}

// NewClassifier creates a Classifier on top of service.
func NewClassifier(service *Service) *Classifier {
	return &Classifier{service: service, batchSize: classifyBatchSize}
}

// ClassifyFiles classifies candidates in order and returns one result per
// candidate. onProgress, if non-nil, receives a fraction in [0,1] and a short
// status line after each batch.
func (c *Classifier) ClassifyFiles(ctx context.Context, candidates []model.Candidate, hints ContextHints, onProgress func(float64, string)) ([]model.ClassifyResult, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	results := make([]model.ClassifyResult, 0, len(candidates))
	for start := 0; start < len(candidates); start += c.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+c.batchSize, len(candidates))
		batch := candidates[start:end]

		prompt := buildClassifyPrompt(batch, hints)
		reply, err := c.service.Send(ctx, TierPrecise, classifyMaxTokens, prompt)
		if err != nil {
			return nil, fmt.Errorf("classification failed for files %d-%d: %w", start+1, end, err)
		}

		batchResults, err := ParseClassifyResults(reply, len(batch))
		if err != nil {
			return nil, fmt.Errorf("classification reply for files %d-%d: %w", start+1, end, err)
		}
		results = append(results, batchResults...)

		if onProgress != nil {
			onProgress(float64(end)/float64(len(candidates)), fmt.Sprintf("classified %d of %d files", end, len(candidates)))
		}
	}
	return results, nil
}

func buildClassifyPrompt(batch []model.Candidate, hints ContextHints) string {
	var b strings.Builder

	b.WriteString("You are a PARA method classifier for a personal knowledge base.\n")
	b.WriteString("Classify each file below into exactly one category:\n")
	b.WriteString("- project: active work with a concrete goal and deadline\n")
	b.WriteString("- area: ongoing responsibility with no end date\n")
	b.WriteString("- resource: reference material of lasting interest\n")
	b.WriteString("- archive: inactive or completed material\n\n")

	if hints.ProjectContext != "" {
		b.WriteString("Current projects:\n")
		b.WriteString(hints.ProjectContext)
		b.WriteString("\n\n")
	}
	if hints.SubfolderContext != "" {
		b.WriteString("Existing folders:\n")
		b.WriteString(hints.SubfolderContext)
		b.WriteString("\n\n")
	}

	b.WriteString("Prefer an existing folder as target_folder when one fits; otherwise propose a concise new folder name.\n")
	b.WriteString("For project files, set project to the matching project name.\n\n")

	for i, candidate := range batch {
		fmt.Fprintf(&b, "### File %d: %s\n", i+1, candidate.FileName)
		b.WriteString(candidate.Content)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Respond with a JSON array of exactly %d objects, one per file in order, ", len(batch))
	b.WriteString("each with keys: category, tags (array of strings, no # prefix), target_folder, summary (one sentence), project (empty string if none), confidence (0.0-1.0).\n")
	b.WriteString("Respond with the JSON array only, no markdown fences, no commentary.")

	return b.String()
}
