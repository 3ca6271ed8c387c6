// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for the single outbound request a live search makes.
type HTTPConfig struct {
	// Timeout bounds the whole upstream call, connect through body read.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent upstream (e.g. "query-miner/0.1").
	UserAgent string `mapstructure:"user_agent" json:"user_agent" yaml:"user_agent"`
}

// GoogleConfig holds the Custom Search credentials. Both are optional at
// load time; a live search without them fails with MissingConfiguration.
type GoogleConfig struct {
	APIKey   string `mapstructure:"api_key" json:"api_key,omitempty" yaml:"api_key,omitempty"`
	EngineID string `mapstructure:"cx" json:"cx,omitempty" yaml:"cx,omitempty"`
}

// SearchConfig holds settings for the fetcher.
type SearchConfig struct {
	HTTPConfig `mapstructure:",squash" yaml:",inline"`

	// Fixture selects fixture mode when a request does not say otherwise.
	Fixture bool `mapstructure:"fixture" json:"fixture" yaml:"fixture"`

	// FixturePath is the fixture document, relative to the working directory.
	FixturePath string `mapstructure:"fixture_path" json:"fixture_path" yaml:"fixture_path"`
}

// ServerConfig holds settings for the HTTP front end.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" json:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" json:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LogFormat selects how log lines are rendered.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string    `mapstructure:"level" json:"level" yaml:"level"`
	Format LogFormat `mapstructure:"format" json:"format" yaml:"format"`
}

// Config groups every setting the binary reads.
type Config struct {
	Google GoogleConfig `mapstructure:"google" json:"google" yaml:"google"`
	Search SearchConfig `mapstructure:"search" json:"search" yaml:"search"`
	Server ServerConfig `mapstructure:"server" json:"server" yaml:"server"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
}
