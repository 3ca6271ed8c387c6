// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles types.Config from defaults, an optional YAML
// config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/query-miner/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. QUERY_MINER_SEARCH_FIXTURE.
const EnvPrefix = "QUERY_MINER"

const configName = "query-miner"

// New returns a viper instance with defaults and environment bindings
// in place. The unprefixed GOOGLE_API_KEY and GOOGLE_CX names are honored
// alongside the prefixed ones.
func New(version string) *viper.Viper {
	v := viper.New()

	v.SetDefault("search.fixture", false)
	v.SetDefault("search.fixture_path", "example_result.json")
	v.SetDefault("search.timeout", 5*time.Second)
	v.SetDefault("search.user_agent", "query-miner/"+version)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(types.LogConsole))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("google.api_key", EnvPrefix+"_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("google.cx", EnvPrefix+"_GOOGLE_CX", "GOOGLE_CX")

	return v
}

// ReadFile loads cfgFile, or searches ./query-miner.yaml and
// ~/.config/query-miner/config.yaml when cfgFile is empty. It returns the
// file used, or "" when none was found. A missing searched file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config and checks it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no component can work with.
func Validate(cfg types.Config) error {
	if cfg.Search.Timeout < 0 {
		return fmt.Errorf("search.timeout must not be negative, got %v", cfg.Search.Timeout)
	}
	if cfg.Search.FixturePath == "" {
		return errors.New("search.fixture_path must not be empty")
	}
	if cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must not be negative, got %v", cfg.Server.ShutdownTimeout)
	}
	return nil
}
