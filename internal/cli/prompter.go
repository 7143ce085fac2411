package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/pipeline"
)

// progressScale is the resolution of the progress bar.
const progressScale = 1000

// Prompter handles the interactive side of a pipeline run: the progress bar
// while it works, and the confirmation dialogue for files the AI would not
// place on its own.
type Prompter struct {
	reader *bufio.Reader
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewPrompter creates a Prompter. Nil reader or writer default to stdin and
// stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Progress returns a pipeline progress callback rendering a progress bar.
func (p *Prompter) Progress(description string) pipeline.ProgressFunc {
	p.bar = progressbar.NewOptions(progressScale,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return func(fraction float64, status string) {
		_ = p.bar.Set(int(fraction * progressScale))
		p.bar.Describe("[cyan]" + status + "[reset]")
	}
}

// FinishProgress completes and clears the active progress bar.
func (p *Prompter) FinishProgress() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.writer)
	p.bar = nil
}

// ErrSkipped is returned by ConfirmPending when the user skips a file.
var ErrSkipped = errSkipped{}

type errSkipped struct{}

func (errSkipped) Error() string { return "skipped by user" }

// ConfirmPending shows one deferred file and returns the index of the chosen
// option. Skipping returns ErrSkipped.
func (p *Prompter) ConfirmPending(ctx context.Context, pending model.PendingConfirmation) (int, error) {
	fmt.Fprintf(p.writer, "\n%s %s\n", Bold(pending.FileName), Subtle("("+reasonLabel(pending.Reason)+")"))
	if excerpt := strings.TrimSpace(pending.Excerpt); excerpt != "" {
		fmt.Fprintf(p.writer, "%s\n", Subtle(indent(excerpt)))
	}
	fmt.Fprintln(p.writer)

	for i, option := range pending.Options {
		line := fmt.Sprintf("  [%d] %s / %s", i+1, option.Category.DisplayName(), option.TargetFolder)
		if option.Project != "" {
			line += fmt.Sprintf(" (project: %s)", option.Project)
		}
		if i == 0 {
			line += " " + Info(fmt.Sprintf("— AI pick, confidence %.2f", option.Confidence))
		}
		fmt.Fprintln(p.writer, line)
	}
	fmt.Fprintln(p.writer, "  [s] Skip, leave the file where it is")

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintf(p.writer, "\nChoice [1-%d/s]: ", len(pending.Options))

		input, err := p.reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.ToLower(strings.TrimSpace(input))

		if input == "s" || input == "skip" {
			return 0, ErrSkipped
		}
		choice, err := strconv.Atoi(input)
		if err == nil && choice >= 1 && choice <= len(pending.Options) {
			return choice - 1, nil
		}
		fmt.Fprintln(p.writer, Warn("Please pick one of the listed options."))
	}
}

// Summary prints the outcome of a pipeline run.
func (p *Prompter) Summary(result pipeline.Result) {
	fmt.Fprintf(p.writer, "%s %d files processed", Success("Done:"), result.Total)
	if n := result.Classified(); n > 0 {
		fmt.Fprintf(p.writer, ", %d classified", n)
	}
	if n := result.Deduplicated(); n > 0 {
		fmt.Fprintf(p.writer, ", %d duplicates removed", n)
	}
	if n := len(result.NeedsConfirmation); n > 0 {
		fmt.Fprintf(p.writer, ", %s", Warn(fmt.Sprintf("%d awaiting confirmation", n)))
	}
	fmt.Fprintln(p.writer)

	for _, processed := range result.Processed {
		if !processed.IsSuccess() {
			fmt.Fprintf(p.writer, "%s %s: %s\n", Fail("error"), processed.FileName, processed.Detail)
		}
	}
}

func reasonLabel(reason model.ConfirmationReason) string {
	switch reason {
	case model.ReasonLowConfidence:
		return "AI is unsure where this belongs"
	case model.ReasonMisclassified:
		return "AI suggests a different location"
	default:
		return string(reason)
	}
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
