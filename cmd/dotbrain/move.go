package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

func moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <folder> <from> <to>",
		Short: "Move a folder between PARA categories",
		Long: `Move a named subfolder from one PARA category to another, updating the
frontmatter of every note inside it. Moving into archive marks the
folder completed and tags references to it across the vault; moving out
of archive reverses that.

Categories are one of: project, area, resource, archive.`,
		Args: cobra.ExactArgs(3),
		RunE: runMove,
	}
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name := args[0]
	from, err := model.ParseCategory(args[1])
	if err != nil {
		return err
	}
	to, err := model.ParseCategory(args[2])
	if err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("folder is already in %s", from)
	}

	paths, err := vaultPaths()
	if err != nil {
		return err
	}

	mover := vault.NewMover(paths)
	updated, err := mover.MoveFolder(ctx, name, from, to)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s moved %s from %s to %s (%d notes updated)\n",
		cli.Success("✓"), cli.Bold(name), from.DisplayName(), to.DisplayName(), updated)
	return nil
}
