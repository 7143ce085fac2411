package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DinN0000/dotbrain/internal/ai"
	"github.com/DinN0000/dotbrain/internal/dedup"
	"github.com/DinN0000/dotbrain/internal/extract"
	"github.com/DinN0000/dotbrain/internal/frontmatter"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// confidenceThreshold separates auto-filed results from ones deferred to the
// user.
const confidenceThreshold = 0.6

// Organizer files everything in the inbox: duplicates are merged away,
// confident classifications move straight into their category folder, and
// uncertain ones wait for confirmation.
type Organizer struct {
	paths      vault.Paths
	scanner    vault.Scanner
	dedup      dedup.Deduplicator
	extractor  extract.Extractor
	classifier Classifier
	recorder   ActivityRecorder
	logger     *slog.Logger
}

// NewOrganizer assembles an Organizer. recorder may be nil.
func NewOrganizer(paths vault.Paths, classifier Classifier, recorder ActivityRecorder, logger *slog.Logger) *Organizer {
	return &Organizer{
		paths:      paths,
		scanner:    vault.NewScanner(paths),
		dedup:      dedup.New(),
		extractor:  extract.New(),
		classifier: classifier,
		recorder:   recorder,
		logger:     logger,
	}
}

// Run processes the inbox. Files already committed stay committed if the
// context is cancelled partway.
func (o *Organizer) Run(ctx context.Context, onProgress ProgressFunc) (Result, error) {
	progress := monotonic(onProgress)

	files := o.scanner.ScanInbox()
	total := len(files)
	progress(0.05, fmt.Sprintf("found %d files", total))

	if total == 0 {
		progress(1.0, "inbox empty")
		return Result{}, nil
	}

	unique, processed := o.dedup.Deduplicate(files, "")
	o.recordDuplicates(ctx, processed)
	progress(0.10, fmt.Sprintf("%d duplicates removed", total-len(unique)))

	contextBuilder := vault.NewContextBuilder(o.paths)
	hints := ai.ContextHints{
		ProjectContext:   contextBuilder.ProjectContext(),
		SubfolderContext: contextBuilder.SubfolderContext(),
	}
	projectNames := contextBuilder.ProjectNames()
	progress(0.15, "loaded vault context")

	candidates := make([]model.Candidate, 0, len(unique))
	for i, path := range unique {
		if err := ctx.Err(); err != nil {
			return Result{Processed: processed, Total: total}, err
		}
		fileName := filepath.Base(path)
		progress(0.15+float64(i)/float64(len(unique))*0.15, fmt.Sprintf("extracting %s", fileName))
		candidates = append(candidates, model.Candidate{
			Path:     path,
			FileName: fileName,
			Content:  o.extractor.Extract(path),
		})
	}

	progress(0.30, "classifying")
	classifications, err := o.classifier.ClassifyFiles(ctx, candidates, hints, func(fraction float64, status string) {
		progress(0.30+fraction*0.40, status)
	})
	if err != nil {
		return Result{Processed: processed, Total: total}, fmt.Errorf("classification failed: %w", err)
	}

	var needsConfirmation []model.PendingConfirmation
	for i, classification := range classifications {
		if err := ctx.Err(); err != nil {
			return Result{Processed: processed, NeedsConfirmation: needsConfirmation, Total: total}, err
		}
		candidate := candidates[i]
		progress(0.70+float64(i)/float64(len(classifications))*0.25, fmt.Sprintf("filing %s", candidate.FileName))

		if classification.Confidence < confidenceThreshold {
			o.logger.Debug("low confidence, deferring",
				"file", candidate.FileName,
				"confidence", classification.Confidence)
			needsConfirmation = append(needsConfirmation, model.PendingConfirmation{
				FileName: candidate.FileName,
				FilePath: candidate.Path,
				Excerpt:  excerpt(candidate.Content),
				Options:  GenerateOptions(classification, projectNames),
				Reason:   model.ReasonLowConfidence,
			})
			continue
		}

		result := o.commit(candidate.Path, classification)
		processed = append(processed, result)
		if result.IsSuccess() {
			o.recordClassified(ctx, result)
		}
	}

	progress(0.95, "finishing up")
	progress(1.0, "done")

	return Result{
		Processed:         processed,
		NeedsConfirmation: needsConfirmation,
		Total:             total,
	}, nil
}

// ApplyConfirmation commits the chosen option for a deferred file.
func (o *Organizer) ApplyConfirmation(ctx context.Context, pending model.PendingConfirmation, option int) (model.ProcessedFileResult, error) {
	if option < 0 || option >= len(pending.Options) {
		return model.ProcessedFileResult{}, fmt.Errorf("option %d out of range (have %d)", option, len(pending.Options))
	}

	result := o.commit(pending.FilePath, pending.Options[option])
	if result.IsSuccess() {
		o.recordClassified(ctx, result)
	}
	return result, nil
}

// commit moves a file into its category subfolder. Markdown notes get fresh
// frontmatter with the body carried over; other files move untouched and gain
// a companion note pointing at them through the file key.
func (o *Organizer) commit(path string, result model.ClassifyResult) model.ProcessedFileResult {
	fileName := filepath.Base(path)

	// The target folder comes back from the AI; never trust it to stay
	// inside the vault.
	folder := vault.SanitizeName(result.TargetFolder)
	if folder == "" {
		return errorResult(fileName, result, path, fmt.Sprintf("unusable target folder %q", result.TargetFolder))
	}

	targetDir := o.paths.Subfolder(result.Category, folder)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("failed to create folder: %v", err))
	}

	if strings.EqualFold(filepath.Ext(fileName), ".md") {
		return o.commitNote(path, targetDir, result)
	}
	return o.commitAttachment(path, targetDir, result)
}

func (o *Organizer) commitNote(path, targetDir string, result model.ClassifyResult) model.ProcessedFileResult {
	fileName := filepath.Base(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("read failed: %v", err))
	}
	existing, body := frontmatter.Parse(string(content))

	fm := o.freshFrontmatter(result, existing.Created)
	// Tags merged in from deleted duplicates must survive the move.
	fm.Tags = unionTags(existing.Tags, result.Tags)
	fm.File = existing.File
	if fm.File == "" {
		fm.File = fileName
	}

	target := uniquePath(filepath.Join(targetDir, fileName))
	if err := vault.WriteFileAtomic(target, []byte(frontmatter.Compose(fm, body)), 0o644); err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("write failed: %v", err))
	}
	if err := os.Remove(path); err != nil {
		o.logger.Warn("failed to remove original", "file", path, "error", err)
	}

	return model.ProcessedFileResult{
		FileName:   fileName,
		Category:   result.Category,
		TargetPath: target,
		Tags:       result.Tags,
		Kind:       model.ResultClassified,
	}
}

func (o *Organizer) commitAttachment(path, targetDir string, result model.ClassifyResult) model.ProcessedFileResult {
	fileName := filepath.Base(path)

	target := uniquePath(filepath.Join(targetDir, fileName))
	if err := os.Rename(path, target); err != nil {
		return errorResult(fileName, result, path, fmt.Sprintf("move failed: %v", err))
	}

	fm := o.freshFrontmatter(result, "")
	fm.Source = model.SourceGenerated
	fm.File = filepath.Base(target)

	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	notePath := uniquePath(filepath.Join(targetDir, stem+".md"))
	note := frontmatter.Compose(fm, result.Summary+"\n")
	if err := vault.WriteFileAtomic(notePath, []byte(note), 0o644); err != nil {
		o.logger.Warn("failed to write companion note", "file", notePath, "error", err)
	}

	return model.ProcessedFileResult{
		FileName:   fileName,
		Category:   result.Category,
		TargetPath: target,
		Tags:       result.Tags,
		Kind:       model.ResultClassified,
	}
}

func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, tag := range append(append([]string{}, a...), b...) {
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (o *Organizer) freshFrontmatter(result model.ClassifyResult, created string) frontmatter.Frontmatter {
	if created == "" {
		created = frontmatter.Today()
	}
	return frontmatter.Frontmatter{
		Para:    result.Category,
		Tags:    result.Tags,
		Created: created,
		Status:  model.StatusActive,
		Summary: result.Summary,
		Source:  model.SourceImport,
		Project: result.Project,
	}
}

func (o *Organizer) recordDuplicates(ctx context.Context, processed []model.ProcessedFileResult) {
	if o.recorder == nil {
		return
	}
	for _, result := range processed {
		if result.Kind != model.ResultDeduplicated {
			continue
		}
		if err := o.recorder.IncrementDuplicates(ctx); err != nil {
			o.logger.Warn("failed to record duplicate", "error", err)
		}
		if err := o.recorder.RecordActivity(ctx, result.FileName, string(result.Category), string(model.ResultDeduplicated)); err != nil {
			o.logger.Warn("failed to record activity", "error", err)
		}
	}
}

func (o *Organizer) recordClassified(ctx context.Context, result model.ProcessedFileResult) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordActivity(ctx, result.FileName, string(result.Category), string(model.ResultClassified)); err != nil {
		o.logger.Warn("failed to record activity", "error", err)
	}
}
