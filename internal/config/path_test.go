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
	t.Setenv("EXODASH_TEST_DIR", "/data/exodash")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "empty path",
			path:     "",
			expected: "",
		},
		{
			name:     "tilde prefix",
			path:     "~/history.db",
			expected: filepath.Join(home, "history.db"),
		},
		{
			name:     "bare tilde",
			path:     "~",
			expected: home,
		},
		{
			name:     "env variable",
			path:     "$EXODASH_TEST_DIR/history.db",
			expected: "/data/exodash/history.db",
		},
		{
			name:     "absolute path untouched",
			path:     "/var/lib/exodash.db",
			expected: "/var/lib/exodash.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.path))
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "deep", "history.db")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent
	require.NoError(t, EnsureParentDir(path))
}
