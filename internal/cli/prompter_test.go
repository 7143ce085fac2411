package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/pipeline"
)

func pendingFixture() model.PendingConfirmation {
	return model.PendingConfirmation{
		FileName: "maybe.md",
		FilePath: "/vault/_Inbox/maybe.md",
		Excerpt:  "some unclear content",
		Reason:   model.ReasonLowConfidence,
		Options: []model.ClassifyResult{
			{Category: model.CategoryResource, TargetFolder: "General", Confidence: 0.4},
			{Category: model.CategoryProject, TargetFolder: "General", Project: "Alpha", Confidence: 0.5},
			{Category: model.CategoryArea, TargetFolder: "General", Confidence: 0.5},
			{Category: model.CategoryArchive, TargetFolder: "General", Confidence: 0.5},
		},
	}
}

func TestConfirmPendingPicksOption(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("2\n"), &out)

	choice, err := prompter.ConfirmPending(context.Background(), pendingFixture())
	require.NoError(t, err)
	assert.Equal(t, 1, choice)

	assert.Contains(t, out.String(), "maybe.md")
	assert.Contains(t, out.String(), "project: Alpha")
	assert.Contains(t, out.String(), "some unclear content")
}

func TestConfirmPendingSkip(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("s\n"), &out)

	_, err := prompter.ConfirmPending(context.Background(), pendingFixture())
	assert.ErrorIs(t, err, ErrSkipped)
}

func TestConfirmPendingRejectsInvalidInput(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("9\nnope\n1\n"), &out)

	choice, err := prompter.ConfirmPending(context.Background(), pendingFixture())
	require.NoError(t, err)
	assert.Equal(t, 0, choice)
	assert.Contains(t, out.String(), "Please pick one of the listed options.")
}

func TestSummary(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(nil, &out)

	prompter.Summary(pipeline.Result{
		Total: 5,
		Processed: []model.ProcessedFileResult{
			{FileName: "a.md", Kind: model.ResultClassified},
			{FileName: "b.md", Kind: model.ResultDeduplicated},
			{FileName: "c.md", Kind: model.ResultError, Detail: "write failed"},
		},
		NeedsConfirmation: []model.PendingConfirmation{{FileName: "d.md"}},
	})

	text := out.String()
	assert.Contains(t, text, "5 files processed")
	assert.Contains(t, text, "1 classified")
	assert.Contains(t, text, "1 duplicates removed")
	assert.Contains(t, text, "1 awaiting confirmation")
	assert.Contains(t, text, "c.md: write failed")
}
