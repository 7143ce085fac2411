package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DinN0000/dotbrain/internal/ai"
	"github.com/DinN0000/dotbrain/internal/cli"
	"github.com/DinN0000/dotbrain/internal/secrets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage AI provider credentials",
		Long: `Manage API keys for the AI providers. Keys are kept in a
permission-restricted credentials file, never in the config.`,
	}

	cmd.AddCommand(authSetCmd())
	cmd.AddCommand(authStatusCmd())
	cmd.AddCommand(authDeleteCmd())

	return cmd
}

func authSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider (claude or gemini)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := ai.Provider(strings.ToLower(args[0]))
			if !provider.Valid() {
				return fmt.Errorf("unknown provider %q (use claude or gemini)", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "API key for %s: ", provider)
			reader := bufio.NewReader(cmd.InOrStdin())
			key, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return errors.New("empty API key")
			}

			store, err := openSecrets()
			if err != nil {
				return err
			}
			if err := store.Set(provider.CredentialAccount(), key); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s stored key for %s\n", cli.Success("✓"), provider)
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which providers have stored keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSecrets()
			if err != nil {
				return err
			}

			active := currentProvider()
			out := cmd.OutOrStdout()
			for _, provider := range []ai.Provider{ai.ProviderClaude, ai.ProviderGemini} {
				mark := cli.Fail("missing")
				if _, err := store.Get(provider.CredentialAccount()); err == nil {
					mark = cli.Success("configured")
				} else if !errors.Is(err, secrets.ErrNotFound) {
					return err
				}

				suffix := ""
				if provider == active {
					suffix = cli.Info(" (active)")
				}
				fmt.Fprintf(out, "  %-8s %s%s\n", provider, mark, suffix)
			}
			fmt.Fprintf(out, "\nSwitch providers with %s in the config, or DOTBRAIN_AI_PROVIDER.\n", cli.Bold("ai.provider"))
			return nil
		},
	}
}

func authDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a provider's stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := ai.Provider(strings.ToLower(args[0]))
			if !provider.Valid() {
				return fmt.Errorf("unknown provider %q (use claude or gemini)", args[0])
			}

			store, err := openSecrets()
			if err != nil {
				return err
			}
			if err := store.Delete(provider.CredentialAccount()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s removed key for %s\n", cli.Success("✓"), provider)
			return nil
		},
	}
}
