package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/DinN0000/dotbrain/internal/ai"
	"github.com/DinN0000/dotbrain/internal/dedup"
	"github.com/DinN0000/dotbrain/internal/extract"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// Classifier is the AI boundary of the pipeline.
type Classifier interface {
	ClassifyFiles(ctx context.Context, candidates []model.Candidate, hints ai.ContextHints, onProgress func(float64, string)) ([]model.ClassifyResult, error)
}

// ActivityRecorder receives the pipeline's bookkeeping events. A nil recorder
// disables recording.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, fileName, category, action string) error
	IncrementDuplicates(ctx context.Context) error
}

// Reorganizer re-checks every file in one category subfolder: duplicates are
// merged away, files whose classification still matches their location get
// refreshed frontmatter, and files the AI would put elsewhere are deferred to
// the user rather than moved silently.
type Reorganizer struct {
	paths      vault.Paths
	scanner    vault.Scanner
	dedup      dedup.Deduplicator
	extractor  extract.Extractor
	classifier Classifier
	recorder   ActivityRecorder
	logger     *slog.Logger
}

// NewReorganizer assembles a Reorganizer. recorder may be nil.
func NewReorganizer(paths vault.Paths, classifier Classifier, recorder ActivityRecorder, logger *slog.Logger) *Reorganizer {
	return &Reorganizer{
		paths:      paths,
		scanner:    vault.NewScanner(paths),
		dedup:      dedup.New(),
		extractor:  extract.New(),
		classifier: classifier,
		recorder:   recorder,
		logger:     logger,
	}
}

// Run processes the given subfolder of category. Partial progress survives
// cancellation: files already committed stay committed.
func (r *Reorganizer) Run(ctx context.Context, category model.PARACategory, subfolder string, onProgress ProgressFunc) (Result, error) {
	progress := monotonic(onProgress)

	dir := r.paths.Subfolder(category, subfolder)
	files := r.scanner.FilesInFolder(dir, subfolder+".md")
	total := len(files)
	progress(0.05, fmt.Sprintf("found %d files", total))

	if total == 0 {
		progress(1.0, "nothing to do")
		return Result{}, nil
	}

	unique, processed := r.dedup.Deduplicate(files, category)
	r.recordDuplicates(ctx, processed)
	progress(0.10, fmt.Sprintf("%d duplicates removed", total-len(unique)))

	if len(unique) == 0 {
		progress(1.0, "done")
		return Result{Processed: processed, Total: total}, nil
	}

	contextBuilder := vault.NewContextBuilder(r.paths)
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
			Content:  r.extractor.Extract(path),
		})
	}

	progress(0.30, "classifying")
	classifications, err := r.classifier.ClassifyFiles(ctx, candidates, hints, func(fraction float64, status string) {
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
		progress(0.70+float64(i)/float64(len(classifications))*0.25, fmt.Sprintf("processing %s", candidate.FileName))

		if classification.Category == category && classification.TargetFolder == subfolder {
			result := updateInPlace(candidate.Path, classification)
			processed = append(processed, result)
			if result.IsSuccess() {
				r.recordClassified(ctx, result)
			}
			continue
		}

		r.logger.Debug("classification disagrees with location",
			"file", candidate.FileName,
			"current", string(category),
			"suggested", string(classification.Category),
			"suggested_folder", classification.TargetFolder)
		needsConfirmation = append(needsConfirmation, model.PendingConfirmation{
			FileName: candidate.FileName,
			FilePath: candidate.Path,
			Excerpt:  excerpt(candidate.Content),
			Options:  GenerateOptions(classification, projectNames),
			Reason:   model.ReasonMisclassified,
		})
	}

	progress(0.95, "finishing up")
	progress(1.0, "done")

	return Result{
		Processed:         processed,
		NeedsConfirmation: needsConfirmation,
		Total:             total,
	}, nil
}

func (r *Reorganizer) recordDuplicates(ctx context.Context, processed []model.ProcessedFileResult) {
	if r.recorder == nil {
		return
	}
	for _, result := range processed {
		if result.Kind != model.ResultDeduplicated {
			continue
		}
		if err := r.recorder.IncrementDuplicates(ctx); err != nil {
			r.logger.Warn("failed to record duplicate", "error", err)
		}
		if err := r.recorder.RecordActivity(ctx, result.FileName, string(result.Category), string(model.ResultDeduplicated)); err != nil {
			r.logger.Warn("failed to record activity", "error", err)
		}
	}
}

func (r *Reorganizer) recordClassified(ctx context.Context, result model.ProcessedFileResult) {
	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordActivity(ctx, result.FileName, string(result.Category), string(model.ResultClassified)); err != nil {
		r.logger.Warn("failed to record activity", "error", err)
	}
}
