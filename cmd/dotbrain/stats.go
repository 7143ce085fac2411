package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/stats"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show vault statistics",
		Long: `Show file counts per category, recent activity, cumulative API cost,
and the number of duplicates removed so far.`,
		RunE: runStats,
	}

	cmd.Flags().Int("recent", 10, "number of recent activity entries to show")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	paths, err := vaultPaths()
	if err != nil {
		return err
	}

	store, err := openStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshot, err := stats.NewCollector(paths, store).Collect(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %d files\n", cli.Bold("Total:"), snapshot.TotalFiles)
	for _, category := range model.AllCategories() {
		fmt.Fprintf(out, "  %-10s %d\n", category.DisplayName(), snapshot.ByCategory[category])
	}

	fmt.Fprintf(out, "\n%s $%.4f\n", cli.Bold("API cost:"), snapshot.APICost)
	fmt.Fprintf(out, "%s %d\n", cli.Bold("Duplicates removed:"), snapshot.DuplicatesFound)

	recent, _ := cmd.Flags().GetInt("recent")
	if recent > 0 && len(snapshot.RecentActivity) > 0 {
		fmt.Fprintf(out, "\n%s\n", cli.Bold("Recent activity:"))
		for i, entry := range snapshot.RecentActivity {
			if i >= recent {
				break
			}
			fmt.Fprintf(out, "  %s  %-13s %s\n",
				entry.Date.Local().Format("2006-01-02 15:04"),
				entry.Action,
				entry.FileName)
		}
	}
	return nil
}
