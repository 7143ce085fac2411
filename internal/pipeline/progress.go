package pipeline

import "github.com/DinN0000/dotbrain/internal/model"

// ProgressFunc receives pipeline progress as a fraction in [0,1] plus a short
// status line. Implementations must be fast; they run on the pipeline
// goroutine.
type ProgressFunc func(fraction float64, status string)

// monotonic wraps fn so reported fractions never decrease, keeping progress
// bars from jumping backwards when stages overlap. A nil fn yields a no-op.
func monotonic(fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return func(float64, string) {}
	}
	high := 0.0
	return func(fraction float64, status string) {
		if fraction < high {
			fraction = high
		} else {
			high = fraction
		}
		fn(fraction, status)
	}
}

// Result summarizes one pipeline run.
type Result struct {
	Processed         []model.ProcessedFileResult
	NeedsConfirmation []model.PendingConfirmation
	Total             int
}

// Classified counts the successfully committed files.
func (r Result) Classified() int {
	n := 0
	for _, p := range r.Processed {
		if p.Kind == model.ResultClassified {
			n++
		}
	}
	return n
}

// Deduplicated counts the removed duplicates.
func (r Result) Deduplicated() int {
	n := 0
	for _, p := range r.Processed {
		if p.Kind == model.ResultDeduplicated {
			n++
		}
	}
	return n
}
