package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/DinN0000/dotbrain/internal/ai"
	"github.com/DinN0000/dotbrain/internal/config"
	"github.com/DinN0000/dotbrain/internal/secrets"
	"github.com/DinN0000/dotbrain/internal/stats"
	"github.com/DinN0000/dotbrain/internal/vault"
)

// vaultPaths resolves the vault root from config, requiring it to exist.
func vaultPaths() (vault.Paths, error) {
	root := config.VaultPath(viper.GetString("vault.path"))

	info, err := os.Stat(root)
	if err != nil {
		return vault.Paths{}, fmt.Errorf("vault %s not found, run 'dotbrain init' first: %w", root, err)
	}
	if !info.IsDir() {
		return vault.Paths{}, fmt.Errorf("vault path %s is not a directory", root)
	}
	return vault.NewPaths(root), nil
}

// openSecrets opens the credential store.
func openSecrets() (secrets.Store, error) {
	return secrets.NewFileStore(config.CredentialsPath(viper.GetString("credentials.path")))
}

// openStats opens the statistics database.
func openStats() (*stats.Store, error) {
	return stats.NewStore(config.StatsDBPath(viper.GetString("stats.database")))
}

// currentProvider reads the configured AI provider, defaulting to claude.
func currentProvider() ai.Provider {
	provider := ai.Provider(viper.GetString("ai.provider"))
	if !provider.Valid() {
		return ai.ProviderClaude
	}
	return provider
}

// newClassifier builds the AI classifier stack, recording API spend into
// costs when non-nil. The returned close function stops the service worker.
func newClassifier(store secrets.Store, costs ai.CostRecorder) (*ai.Classifier, func()) {
	var opts []ai.ServiceOption
	if costs != nil {
		opts = append(opts, ai.WithCostRecorder(costs))
	}
	service := ai.NewService(currentProvider, store, slog.Default(), opts...)
	return ai.NewClassifier(service), service.Close
}
