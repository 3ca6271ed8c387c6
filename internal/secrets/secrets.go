// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// The filename is the key name and the trimmed file contents are the value.
//
// Recognized keys: google-api-key, google-cx.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/query-miner/pkg/types"
)

// DefaultDir is where the CLI looks for secret files.
const DefaultDir = ".secrets"

const (
	GoogleAPIKey   = "google-api-key"
	GoogleEngineID = "google-cx"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, log zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("Could not read secret file")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills credentials that cfg leaves empty from loaded secrets.
// Values already configured (flag, env, config file) win.
func Apply(cfg *types.GoogleConfig, secrets map[string]string) {
	if cfg.APIKey == "" {
		cfg.APIKey = secrets[GoogleAPIKey]
	}
	if cfg.EngineID == "" {
		cfg.EngineID = secrets[GoogleEngineID]
	}
}
