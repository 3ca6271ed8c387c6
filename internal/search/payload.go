// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/query-miner/pkg/types"
)

// Array fields holding the result items. The fixture document and the
// Custom Search API name them differently.
const (
	fixtureItemsField = "results"
	liveItemsField    = "items"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalize reduces a JSON payload to a SearchResponse. itemsField names
// the array to map; a missing or null array yields no results.
func normalize(query string, data []byte, itemsField string) (*types.SearchResponse, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	var items []json.RawMessage
	if raw, ok := doc[itemsField]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("field %q is not an array: %w", itemsField, err)
		}
	}

	results := make([]types.SearchResult, len(items))
	for i, it := range items {
		results[i] = toResult(it)
	}

	raw := make(json.RawMessage, len(data))
	copy(raw, data)

	return &types.SearchResponse{
		Query:        query,
		TotalResults: totalResults(doc["searchInformation"]),
		Results:      results,
		Raw:          raw,
	}, nil
}

// toResult maps one item. Items that are not objects still produce an
// (empty) entry so the result list keeps the source's length and order.
func toResult(raw json.RawMessage) types.SearchResult {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.SearchResult{}
	}
	return types.SearchResult{
		Title:       text(fields["title"]),
		Snippet:     text(fields["snippet"]),
		Link:        text(fields["link"]),
		DisplayLink: text(fields["displayLink"]),
	}
}

// totalResults reads searchInformation.totalResults without re-parsing it:
// a string is returned as is and a bare number keeps its literal text.
func totalResults(info json.RawMessage) *string {
	if len(info) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(info, &fields); err != nil {
		return nil
	}
	raw := bytes.TrimSpace(fields["totalResults"])
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	if s := text(raw); s != nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return types.Text(n.String())
	}
	return nil
}

// text returns the JSON string in raw, or nil for anything else.
func text(raw json.RawMessage) *string {
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
