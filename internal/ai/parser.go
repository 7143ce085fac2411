package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DinN0000/dotbrain/internal/model"
)

// classifyPayload is the wire shape of one classification in the model reply.
type classifyPayload struct {
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	TargetFolder string   `json:"target_folder"`
	Summary      string   `json:"summary"`
	Project      string   `json:"project"`
	Confidence   float64  `json:"confidence"`
}

// cleanMarkdownWrapper strips a markdown code fence around the reply. Models
// often wrap JSON in ```json ... ``` despite instructions not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// extractJSONArray locates the outermost JSON array in the reply, tolerating
// prose before or after it.
func extractJSONArray(content string) (string, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// ParseClassifyResults decodes a model reply into one result per candidate.
// A reply that is not JSON at all is malformed and not worth retrying; a
// well-formed reply with the wrong shape (missing entries, unknown category)
// may be a transient model hiccup and reports ErrInvalidResponse.
func ParseClassifyResults(reply string, want int) ([]model.ClassifyResult, error) {
	cleaned := cleanMarkdownWrapper(reply)
	payload, ok := extractJSONArray(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in reply", ErrMalformedReply)
	}

	var entries []classifyPayload
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if len(entries) != want {
		return nil, fmt.Errorf("%w: got %d classifications, want %d", ErrInvalidResponse, len(entries), want)
	}

	results := make([]model.ClassifyResult, 0, len(entries))
	for i, entry := range entries {
		category, err := model.ParseCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidResponse, i, err)
		}

		targetFolder := strings.TrimSpace(entry.TargetFolder)
		if targetFolder == "" {
			return nil, fmt.Errorf("%w: entry %d: empty target folder", ErrInvalidResponse, i)
		}

		results = append(results, model.ClassifyResult{
			Category:     category,
			Tags:         normalizeTags(entry.Tags),
			TargetFolder: targetFolder,
			Summary:      strings.TrimSpace(entry.Summary),
			Project:      strings.TrimSpace(entry.Project),
			Confidence:   clampConfidence(entry.Confidence),
		})
	}
	return results, nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
