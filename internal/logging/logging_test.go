// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/query-miner/pkg/types"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{Level: "debug", Format: types.LogJSON}, &buf)
	require.NoError(t, err)

	log.Debug().Str("mode", "fixture").Msg("Fetch completed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "fixture", line["mode"])
	assert.Equal(t, "Fetch completed", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{Level: "WARN", Format: types.LogJSON}, &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestNewConsoleDefault(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(types.LogConfig{}, &buf)
	require.NoError(t, err)

	log.Info().Msg("Listening")
	assert.Contains(t, buf.String(), "Listening")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(types.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}
