package model

// NoteStatus tracks the lifecycle state recorded in a note's frontmatter.
type NoteStatus string

// Note status constants.
const (
	StatusActive    NoteStatus = "active"
	StatusCompleted NoteStatus = "completed"
)

// NoteSource records how a note entered the vault.
type NoteSource string

// Note source constants.
const (
	SourceImport    NoteSource = "import"
	SourceGenerated NoteSource = "generated"
)
