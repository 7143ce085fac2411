package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinN0000/dotbrain/internal/model"
)

func TestParseClassifyResults(t *testing.T) {
	reply := `[
		{"category": "project", "tags": ["#launch", "planning"], "target_folder": "Website Redesign", "summary": "Launch plan.", "project": "Website Redesign", "confidence": 0.92},
		{"category": "resource", "tags": ["go"], "target_folder": "Programming", "summary": "Go notes.", "project": "", "confidence": 0.8}
	]`

	results, err := ParseClassifyResults(reply, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, model.CategoryProject, results[0].Category)
	assert.Equal(t, []string{"launch", "planning"}, results[0].Tags)
	assert.Equal(t, "Website Redesign", results[0].TargetFolder)
	assert.Equal(t, "Website Redesign", results[0].Project)
	assert.InDelta(t, 0.92, results[0].Confidence, 1e-9)

	assert.Equal(t, model.CategoryResource, results[1].Category)
	assert.Empty(t, results[1].Project)
}

func TestParseClassifyResultsMarkdownFence(t *testing.T) {
	reply := "```json\n[{\"category\": \"area\", \"tags\": [], \"target_folder\": \"Health\", \"summary\": \"s\", \"project\": \"\", \"confidence\": 0.7}]\n```"

	results, err := ParseClassifyResults(reply, 1)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryArea, results[0].Category)
}

func TestParseClassifyResultsSurroundingProse(t *testing.T) {
	reply := `Here are the classifications:
[{"category": "archive", "tags": ["old"], "target_folder": "2023", "summary": "s", "project": "", "confidence": 0.6}]
Let me know if you need anything else.`

	results, err := ParseClassifyResults(reply, 1)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryArchive, results[0].Category)
}

func TestParseClassifyResultsConfidenceClamped(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "above one", in: "1.4", want: 1},
		{name: "negative", in: "-0.2", want: 0},
		{name: "in range", in: "0.55", want: 0.55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := `[{"category": "resource", "tags": [], "target_folder": "Misc", "summary": "s", "project": "", "confidence": ` + tt.in + `}]`
			results, err := ParseClassifyResults(reply, 1)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, results[0].Confidence, 1e-9)
		})
	}
}

func TestParseClassifyResultsErrors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    int
		wantErr error
	}{
		{
			name:    "no array",
			reply:   "I cannot classify these files.",
			want:    1,
			wantErr: ErrMalformedReply,
		},
		{
			name:    "invalid json",
			reply:   `[{"category": "project",]`,
			want:    1,
			wantErr: ErrMalformedReply,
		},
		{
			name:    "count mismatch",
			reply:   `[{"category": "project", "tags": [], "target_folder": "X", "summary": "s", "project": "", "confidence": 0.9}]`,
			want:    2,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "unknown category",
			reply:   `[{"category": "inbox", "tags": [], "target_folder": "X", "summary": "s", "project": "", "confidence": 0.9}]`,
			want:    1,
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "empty target folder",
			reply:   `[{"category": "project", "tags": [], "target_folder": "  ", "summary": "s", "project": "", "confidence": 0.9}]`,
			want:    1,
			wantErr: ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClassifyResults(tt.reply, tt.want)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
