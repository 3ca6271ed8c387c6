// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/query-miner/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GoogleAPIKey, "  AIza-abc123  \n")
				writeFile(t, dir, GoogleEngineID, "017576662512468239146:omuauf_lfve")
				return dir
			},
			want: map[string]string{
				GoogleAPIKey:   "AIza-abc123",
				GoogleEngineID: "017576662512468239146:omuauf_lfve",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files, dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, GoogleAPIKey, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				writeFile(t, dir, ".hidden-key", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				GoogleAPIKey: "valid-key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain", "x")

	_, err := Load(filepath.Join(dir, "plain"), zerolog.Nop())
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	loaded := map[string]string{GoogleAPIKey: "from-file", GoogleEngineID: "cx-from-file"}

	empty := types.GoogleConfig{}
	Apply(&empty, loaded)
	assert.Equal(t, types.GoogleConfig{APIKey: "from-file", EngineID: "cx-from-file"}, empty)

	configured := types.GoogleConfig{APIKey: "from-env"}
	Apply(&configured, loaded)
	assert.Equal(t, "from-env", configured.APIKey, "configured value wins")
	assert.Equal(t, "cx-from-file", configured.EngineID)

	none := types.GoogleConfig{}
	Apply(&none, map[string]string{})
	assert.Equal(t, types.GoogleConfig{}, none)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
