// Package frontmatter parses and serializes the YAML metadata block at the
// top of a note. Parsing never fails: a missing or malformed block yields a
// zero Frontmatter and the full text as body.
package frontmatter

import (
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DinN0000/dotbrain/internal/model"
)

const delimiter = "---"

// Frontmatter is the structured metadata attached to a note. Field order here
// is the serialization order.
type Frontmatter struct {
	Para    model.PARACategory `yaml:"para,omitempty"`
	Tags    []string           `yaml:"tags,omitempty"`
	Created string             `yaml:"created,omitempty"`
	Status  model.NoteStatus   `yaml:"status,omitempty"`
	Summary string             `yaml:"summary,omitempty"`
	Source  model.NoteSource   `yaml:"source,omitempty"`
	Project string             `yaml:"project,omitempty"`
	File    string             `yaml:"file,omitempty"`
}

// Today returns the current date in the format used by the created field.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Parse splits a leading delimited metadata block from the body text.
// Unknown keys are dropped; a missing or unparseable block degrades to a zero
// Frontmatter with the full text as body.
func Parse(text string) (Frontmatter, string) {
	var fm Frontmatter

	rest, ok := strings.CutPrefix(text, delimiter+"\n")
	if !ok {
		return fm, text
	}

	end := strings.Index(rest, "\n"+delimiter)
	if end < 0 {
		return fm, text
	}

	block := rest[:end]
	body := rest[end+len("\n"+delimiter):]
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return Frontmatter{}, text
	}

	return fm, body
}

// Stringify serializes the frontmatter as a delimited block with a trailing
// newline. Field order is fixed and tags are sorted, so output is
// diff-stable.
func Stringify(fm Frontmatter) string {
	if len(fm.Tags) > 0 {
		tags := make([]string, len(fm.Tags))
		copy(tags, fm.Tags)
		sort.Strings(tags)
		fm.Tags = tags
	}

	out, err := yaml.Marshal(fm)
	if err != nil {
		// Marshal of a plain struct cannot fail; keep the block well-formed anyway.
		out = nil
	}

	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.Write(out)
	b.WriteString(delimiter)
	b.WriteString("\n")
	return b.String()
}

// Compose joins a frontmatter block and a body into full note text.
func Compose(fm Frontmatter, body string) string {
	return Stringify(fm) + body
}

// StripBlock removes the metadata block and returns the trimmed body only.
// Used when hashing note content.
func StripBlock(text string) string {
	_, body := Parse(text)
	return strings.TrimSpace(body)
}
