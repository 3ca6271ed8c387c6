// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export turns a fetched SearchResponse into downloadable files.
// Every function here is pure: the same response and timestamp always
// produce the same bytes, and none of them can fail on well-typed input.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/query-miner/pkg/types"
)

// Format identifies an export file type.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatJSON, FormatCSV, FormatYAML}

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want json, csv or yaml)", s)
}

// File is an export ready to be written to disk or sent as an attachment.
type File struct {
	// Name is the suggested filename, e.g. search-results-2026-10-19-143005.csv.
	Name        string
	ContentType string
	Data        []byte
}

const (
	filenamePrefix  = "search-results-"
	timestampLayout = "2006-01-02-150405"
)

// Filename returns the suggested name for an export of type ext created at now.
// The timestamp is rendered in UTC so names sort chronologically.
func Filename(ext string, now time.Time) string {
	return filenamePrefix + now.UTC().Format(timestampLayout) + "." + ext
}

// Render produces the export of resp in format f. Only an unknown format
// is an error.
func Render(f Format, resp *types.SearchResponse, now time.Time) (File, error) {
	switch f {
	case FormatJSON:
		return JSON(resp, now), nil
	case FormatCSV:
		return CSV(resp.Results, now), nil
	case FormatYAML:
		return YAML(resp, now), nil
	default:
		return File{}, fmt.Errorf("unknown export format %q", f)
	}
}
