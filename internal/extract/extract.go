// Package extract turns a file path into a bounded text excerpt used as
// classification input. Binary formats are summarized rather than parsed;
// full binary extraction sits behind the Extractor interface so richer
// implementations can plug in.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength bounds the excerpt handed to the classifier.
const DefaultMaxLength = 5000

// Extractor converts a file path into a classification excerpt. A non-text
// file may yield a description string instead of its content.
type Extractor interface {
	Extract(path string) string
}

// binaryExtensions are formats read as descriptions, not text.
var binaryExtensions = map[string]struct{}{
	"pdf": {}, "png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "heic": {},
	"webp": {}, "zip": {}, "tar": {}, "gz": {}, "dmg": {}, "app": {},
	"doc": {}, "docx": {}, "xls": {}, "xlsx": {}, "ppt": {}, "pptx": {},
	"key": {}, "pages": {}, "numbers": {}, "mp3": {}, "mp4": {}, "mov": {},
	"wav": {}, "sqlite": {}, "db": {},
}

// TextExtractor is the default extractor: UTF-8 files are excerpted
// directly, everything else produces a bracketed description. Extraction
// never fails; unreadable files yield a placeholder the classifier can still
// reason about (the filename).
type TextExtractor struct {
	MaxLength int
}

// New creates a TextExtractor with the default excerpt bound.
func New() TextExtractor {
	return TextExtractor{MaxLength: DefaultMaxLength}
}

// Extract returns a bounded excerpt for the file at path.
func (e TextExtractor) Extract(path string) string {
	maxLen := e.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}

	name := filepath.Base(path)
	if isBinaryPath(path) {
		return truncate(fmt.Sprintf("[binary file: %s]", name), maxLen)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("[unreadable file: %s]", name)
	}

	if !looksLikeText(content) {
		return truncate(fmt.Sprintf("[binary file: %s]", name), maxLen)
	}

	return truncate(string(content), maxLen)
}

func isBinaryPath(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	_, ok := binaryExtensions[ext]
	return ok
}

// looksLikeText sniffs the first KB for NUL bytes and invalid UTF-8.
func looksLikeText(content []byte) bool {
	sample := content
	if len(sample) > 1024 {
		sample = sample[:1024]
		// The cut may have split a multi-byte rune; drop the partial tail.
		for len(sample) > 0 && !utf8.RuneStart(sample[len(sample)-1]) {
			sample = sample[:len(sample)-1]
		}
		if len(sample) > 0 && sample[len(sample)-1] >= 0xC0 {
			sample = sample[:len(sample)-1]
		}
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	return utf8.Valid(sample)
}

// truncate cuts s to at most maxLen runes without splitting a rune.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}
