package model

// Candidate is a file queued for classification, with its cached content
// excerpt. Candidates are created per pipeline run and discarded afterwards.
type Candidate struct {
	Path     string
	FileName string
	Content  string
}

// ClassifyResult is the AI's classification of a single candidate.
type ClassifyResult struct {
	Category     PARACategory
	Tags         []string
	TargetFolder string
	Summary      string
	Project      string
	Confidence   float64
}

// ConfirmationReason explains why a candidate was deferred to the user.
type ConfirmationReason string

// Confirmation reason constants.
const (
	ReasonLowConfidence ConfirmationReason = "low_confidence"
	ReasonMisclassified ConfirmationReason = "misclassified"
)

// PendingConfirmation holds a candidate whose classification needs a human
// decision: the primary result first, then one alternative per remaining
// category. Terminal once applied or discarded.
type PendingConfirmation struct {
	FileName string
	FilePath string
	Excerpt  string
	Options  []ClassifyResult
	Reason   ConfirmationReason
}

// Primary returns the AI's own classification, the first option.
func (p PendingConfirmation) Primary() ClassifyResult {
	if len(p.Options) == 0 {
		return ClassifyResult{}
	}
	return p.Options[0]
}

// ResultKind describes the terminal outcome recorded for a processed file.
type ResultKind string

// Result kind constants.
const (
	ResultClassified   ResultKind = "classified"
	ResultDeduplicated ResultKind = "deduplicated"
	ResultError        ResultKind = "error"
)

// ProcessedFileResult is the immutable terminal record of one committed
// action, used for reporting.
type ProcessedFileResult struct {
	FileName   string
	Category   PARACategory
	TargetPath string
	Tags       []string
	Kind       ResultKind
	Detail     string
}

// IsSuccess reports whether the file was handled without error.
func (r ProcessedFileResult) IsSuccess() bool {
	return r.Kind != ResultError
}
