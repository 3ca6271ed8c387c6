// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/query-miner/pkg/types"
)

var testNow = time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)

func sampleResponse() *types.SearchResponse {
	return &types.SearchResponse{
		Query:        "Česko",
		TotalResults: types.Text("1"),
		Results: []types.SearchResult{
			{Title: types.Text("Česká republika"), Snippet: types.Text("Stát ve střední Evropě"), Link: types.Text("https://cz.com"), DisplayLink: types.Text("cz.com")},
		},
	}
}

func TestWriteSearchOutputTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSearchOutput(&buf, sampleResponse(), formatTable, "", testNow))
	assert.Contains(t, buf.String(), "Česká republika")
	assert.Contains(t, buf.String(), "cz.com")
}

func TestWriteSearchOutputStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSearchOutput(&buf, sampleResponse(), "csv", "", testNow))
	assert.True(t, strings.HasPrefix(buf.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, buf.String(), `"Česká republika"`)
}

func TestWriteSearchOutputExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	var buf bytes.Buffer
	require.NoError(t, writeSearchOutput(&buf, sampleResponse(), "json", dir, testNow))

	path := filepath.Join(dir, "search-results-2026-10-19-143000.json")
	assert.Equal(t, path+"\n", buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"query": "Česko"`)
}

func TestWriteSearchOutputErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeSearchOutput(&buf, sampleResponse(), "xlsx", "", testNow))
	assert.Error(t, writeSearchOutput(&buf, sampleResponse(), formatTable, t.TempDir(), testNow))
}
