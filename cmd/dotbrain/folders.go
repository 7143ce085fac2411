package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

func foldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folders [category]",
		Short: "List the folders in a category",
		Long: `List the subfolders of one PARA category with their file counts and
summaries. Without an argument, all four categories are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFolders,
	}
}

func runFolders(cmd *cobra.Command, args []string) error {
	paths, err := vaultPaths()
	if err != nil {
		return err
	}

	categories := model.AllCategories()
	if len(args) == 1 {
		category, err := model.ParseCategory(args[0])
		if err != nil {
			return err
		}
		categories = []model.PARACategory{category}
	}

	mover := vault.NewMover(paths)
	out := cmd.OutOrStdout()
	for _, category := range categories {
		folders := mover.ListFolders(category)
		fmt.Fprintf(out, "%s (%d)\n", cli.Bold(category.DisplayName()), len(folders))
		for _, folder := range folders {
			line := fmt.Sprintf("  %s (%d files)", folder.Name, folder.FileCount)
			if folder.Summary != "" {
				line += " " + cli.Subtle("— "+folder.Summary)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}
