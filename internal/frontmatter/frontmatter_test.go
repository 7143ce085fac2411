package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DinN0000/dotbrain/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantFM   Frontmatter
		wantBody string
	}{
		{
			name: "full block",
			text: "---\npara: project\ntags:\n    - go\n    - notes\ncreated: 2024-03-01\nstatus: active\nsummary: Build log\nsource: import\nproject: Alpha\nfile: build log.txt\n---\n# Heading\nbody text\n",
			wantFM: Frontmatter{
				Para:    model.CategoryProject,
				Tags:    []string{"go", "notes"},
				Created: "2024-03-01",
				Status:  model.StatusActive,
				Summary: "Build log",
				Source:  model.SourceImport,
				Project: "Alpha",
				File:    "build log.txt",
			},
			wantBody: "# Heading\nbody text\n",
		},
		{
			name:     "no block",
			text:     "just a note\n",
			wantFM:   Frontmatter{},
			wantBody: "just a note\n",
		},
		{
			name:     "unterminated block degrades",
			text:     "---\npara: area\nno closing delimiter",
			wantFM:   Frontmatter{},
			wantBody: "---\npara: area\nno closing delimiter",
		},
		{
			name:     "malformed yaml degrades",
			text:     "---\npara: [unclosed\n---\nbody\n",
			wantFM:   Frontmatter{},
			wantBody: "---\npara: [unclosed\n---\nbody\n",
		},
		{
			name:     "unknown keys dropped",
			text:     "---\npara: resource\nlegacy_field: whatever\n---\nbody\n",
			wantFM:   Frontmatter{Para: model.CategoryResource},
			wantBody: "body\n",
		},
		{
			name:     "empty body",
			text:     "---\nstatus: completed\n---\n",
			wantFM:   Frontmatter{Status: model.StatusCompleted},
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := Parse(tt.text)
			assert.Equal(t, tt.wantFM, fm)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fm   Frontmatter
	}{
		{
			name: "all fields",
			fm: Frontmatter{
				Para:    model.CategoryArchive,
				Tags:    []string{"a", "b", "c"},
				Created: "2023-11-30",
				Status:  model.StatusCompleted,
				Summary: "Done: archived project",
				Source:  model.SourceGenerated,
				Project: "Beta",
				File:    "original name.pdf",
			},
		},
		{
			name: "sparse fields",
			fm:   Frontmatter{Para: model.CategoryArea, Created: "2024-01-01"},
		},
		{
			name: "summary with colon and quotes",
			fm:   Frontmatter{Summary: `meeting: "weekly sync" notes`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, body := Parse(Stringify(tt.fm))
			assert.Equal(t, tt.fm, got)
			assert.Empty(t, body)
		})
	}
}

func TestStringifySortsTags(t *testing.T) {
	fm := Frontmatter{Tags: []string{"zebra", "alpha", "mid"}}
	out := Stringify(fm)

	parsed, _ := Parse(out)
	assert.Equal(t, []string{"alpha", "mid", "zebra"}, parsed.Tags)

	// Input slice must not be reordered in place.
	assert.Equal(t, []string{"zebra", "alpha", "mid"}, fm.Tags)
}

func TestStringifyDeterministic(t *testing.T) {
	fm := Frontmatter{
		Para: model.CategoryProject,
		Tags: []string{"b", "a"},
	}
	require.Equal(t, Stringify(fm), Stringify(fm))
}

func TestCompose(t *testing.T) {
	fm := Frontmatter{Para: model.CategoryResource}
	text := Compose(fm, "body line\n")

	got, body := Parse(text)
	assert.Equal(t, fm, got)
	assert.Equal(t, "body line\n", body)
}

func TestStripBlock(t *testing.T) {
	text := "---\npara: project\n---\n\nbody only\n"
	assert.Equal(t, "body only", StripBlock(text))

	// No block: whole text is body.
	assert.Equal(t, "plain", StripBlock("plain\n"))
}
