package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DOTBRAIN_TEST_DIR", "/tmp/somewhere")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain", in: "/var/data", want: "/var/data"},
		{name: "tilde", in: "~/notes", want: filepath.Join(home, "notes")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$DOTBRAIN_TEST_DIR/db", want: "/tmp/somewhere/db"},
		{name: "home var", in: "$HOME/notes", want: home + "/notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home+"/dotbrain", VaultPath(""))
	assert.Equal(t, home+"/.config/dotbrain/credentials.json", CredentialsPath(""))
	assert.Equal(t, home+"/.local/share/dotbrain/stats.db", StatsDBPath(""))

	assert.Equal(t, "/explicit/vault", VaultPath("/explicit/vault"))
}
