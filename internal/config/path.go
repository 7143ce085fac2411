// Package config resolves the application's on-disk locations.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, relative to the user's home. Each is overridable
// through its config key.
const (
	defaultVault       = "$HOME/dotbrain"
	defaultCredentials = "$HOME/.config/dotbrain/credentials.json"
	defaultStatsDB     = "$HOME/.local/share/dotbrain/stats.db"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// VaultPath resolves the vault root, falling back to the default location.
func VaultPath(configured string) string {
	if configured == "" {
		configured = defaultVault
	}
	return ExpandPath(configured)
}

// CredentialsPath resolves the credential store file.
func CredentialsPath(configured string) string {
	if configured == "" {
		configured = defaultCredentials
	}
	return ExpandPath(configured)
}

// StatsDBPath resolves the statistics database file.
func StatsDBPath(configured string) string {
	if configured == "" {
		configured = defaultStatsDB
	}
	return ExpandPath(configured)
}
