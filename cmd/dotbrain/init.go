package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/config"
	"github.com/DinN0000/dotbrain/internal/model"
	"github.com/DinN0000/dotbrain/internal/vault"
)

func initVaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the PARA folder layout",
		Long: `Create the vault root with its _Inbox and the four PARA category
folders. Safe to run on an existing vault; nothing is overwritten.`,
		RunE: runInitVault,
	}
}

func runInitVault(cmd *cobra.Command, _ []string) error {
	root := config.VaultPath(viper.GetString("vault.path"))

	paths := vault.NewPaths(root)
	dirs := []string{paths.Inbox()}
	for _, category := range model.AllCategories() {
		dirs = append(dirs, paths.Category(category))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s vault ready at %s\n", cli.Success("✓"), cli.Bold(root))
	fmt.Fprintln(cmd.OutOrStdout(), "Drop files into _Inbox and run 'dotbrain organize'.")
	return nil
}
