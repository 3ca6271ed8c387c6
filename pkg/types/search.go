// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the fetcher, the
// export formatters, the web layer and the CLI.
package types

import "encoding/json"

// SearchResult is the minimal shape every upstream item is reduced to.
// Each field is nil when the source did not carry it as text.
type SearchResult struct {
	Title       *string `json:"title" yaml:"title"`
	Snippet     *string `json:"snippet" yaml:"snippet"`
	Link        *string `json:"link" yaml:"link"`
	DisplayLink *string `json:"displayLink" yaml:"displayLink"`
}

// SearchResponse is the normalized answer to one query.
type SearchResponse struct {
	// Query is the literal query text the caller supplied.
	Query string `json:"query" yaml:"query"`

	// TotalResults is the upstream's own count, kept as text.
	TotalResults *string `json:"totalResults" yaml:"totalResults"`

	// Results mirrors the upstream item array: same length, same order.
	Results []SearchResult `json:"results" yaml:"results"`

	// Raw is the upstream or fixture payload exactly as received.
	Raw json.RawMessage `json:"raw" yaml:"-"`
}

// Text returns a pointer to s. It keeps literals in tests and fixtures short.
func Text(s string) *string { return &s }

// Value returns the text behind p, or "" when p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
