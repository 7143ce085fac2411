package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/pipeline"
	"github.com/DinN0000/dotbrain/internal/vault"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the inbox and organize new files automatically",
		Long: `Watch the vault's _Inbox and run the organize pipeline whenever files
settle. Files the AI is unsure about stay in the inbox; confirm them
later with 'dotbrain organize'. Stop with Ctrl-C.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
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

	onChange := func() {
		result, err := organizer.Run(ctx, nil)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				slog.Error("organize run failed", "error", err)
			}
			return
		}
		slog.Info("inbox processed",
			"total", result.Total,
			"classified", result.Classified(),
			"duplicates", result.Deduplicated(),
			"deferred", len(result.NeedsConfirmation))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", paths.Inbox())
	watcher := vault.NewWatcher(paths.Inbox(), onChange)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
