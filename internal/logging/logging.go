// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/query-miner/pkg/types"
)

// New returns a zerolog.Logger writing to w at the configured level.
// An empty level means info; an empty format means console.
func New(cfg types.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	switch cfg.Format {
	case "", types.LogConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	case types.LogJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want console or json)", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
