package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/pipeline"
)

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Classify and file everything in the inbox",
		Long: `Classify every file in the vault's _Inbox with AI and move each one
into its PARA category folder. Duplicates are merged and removed.
Files the AI is unsure about are held back for interactive confirmation.`,
		RunE: runOrganize,
	}

	cmd.Flags().Bool("no-input", false, "skip interactive confirmation, leave uncertain files in the inbox")

	return cmd
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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

	organizer := pipeline.NewOrganizer(paths, classifier, statsStore, slog.Default())
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	result, err := organizer.Run(ctx, prompter.Progress("Organizing inbox..."))
	prompter.FinishProgress()
	if err != nil {
		return fmt.Errorf("organize failed: %w", err)
	}

	noInput, _ := cmd.Flags().GetBool("no-input")
	for _, pending := range result.NeedsConfirmation {
		if noInput {
			slog.Info("left in inbox pending confirmation", "file", pending.FileName)
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
