// Package cli renders terminal output for the organizing pipeline: styled
// messages, progress bars, and the interactive confirmation prompt.
package cli

import (
	"github.com/fatih/color"
)

var (
	// Success styles confirmations and completed work.
	Success = color.New(color.FgGreen).SprintFunc()
	// Warn styles cautions and deferred work.
	Warn = color.New(color.FgYellow).SprintFunc()
	// Fail styles errors.
	Fail = color.New(color.FgRed).SprintFunc()
	// Info styles neutral detail lines.
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold styles headings and file names.
	Bold = color.New(color.Bold).SprintFunc()
	// Subtle styles secondary text like excerpts.
	Subtle = color.New(color.Faint).SprintFunc()
)
