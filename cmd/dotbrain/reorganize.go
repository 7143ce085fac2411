package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/pipeline"
)

func reorganizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorganize <category> <folder>",
		Short: "Re-check the classification of every file in a folder",
		Long: `Re-classify every file inside one category subfolder. Files whose
classification still matches their location get refreshed metadata;
files that seem to belong elsewhere are listed for confirmation before
anything moves. Duplicates are merged and removed.

The category is one of: project, area, resource, archive.`,
		Args: cobra.ExactArgs(2),
		RunE: runReorganize,
	}

	cmd.Flags().Bool("no-input", false, "skip interactive confirmation, leave flagged files in place")

	return cmd
}

func runReorganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	category, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}
	subfolder := args[1]

	paths, err := vaultPaths()
	if err != nil {
		return err
	}

	store, err := openSecrets()
	if err != nil {
		return err
	}

	statsStore, err := openStats()
	if err != nil {
		return err
	}
	defer func() { _ = statsStore.Close() }()

	classifier, closeService := newClassifier(store, statsStore)
	defer closeService()

	reorganizer := pipeline.NewReorganizer(paths, classifier, statsStore, slog.Default())
	organizer := pipeline.NewOrganizer(paths, classifier, statsStore, slog.Default())
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	result, err := reorganizer.Run(ctx, category, subfolder, prompter.Progress(fmt.Sprintf("Reorganizing %s/%s...", category, subfolder)))
	prompter.FinishProgress()
	if err != nil {
		return fmt.Errorf("reorganize failed: %w", err)
	}

	noInput, _ := cmd.Flags().GetBool("no-input")
	for _, pending := range result.NeedsConfirmation {
		if noInput {
			slog.Info("left in place pending confirmation", "file", pending.FileName)
			continue
		}

		choice, err := prompter.ConfirmPending(ctx, pending)
		if errors.Is(err, cli.ErrSkipped) {
			continue
		}
		if err != nil {
			return err
		}

		committed, err := organizer.ApplyConfirmation(ctx, pending, choice)
		if err != nil {
			return err
		}
		result.Processed = append(result.Processed, committed)
	}

	prompter.Summary(result)
	return nil
}
