// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pdiddy/query-miner/pkg/types"
)

const (
	maxTitle   = 60
	maxSnippet = 50
)

// FormatTable writes results as a human-readable table to w.
func FormatTable(resp *types.SearchResponse, w io.Writer) error {
	if len(resp.Results) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tTitle\tSite\tSnippet")
	for i, r := range resp.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			i+1,
			truncate(types.Value(r.Title), maxTitle),
			types.Value(r.DisplayLink),
			truncate(oneLine(types.Value(r.Snippet)), maxSnippet),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d results (about %s total)\n", len(resp.Results), totalOrUnknown(resp.TotalResults))
	return err
}

func totalOrUnknown(total *string) string {
	if total == nil || *total == "" {
		return "unknown"
	}
	return *total
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func oneLine(s string) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' || c == '\t' {
			r[i] = ' '
		}
	}
	return string(r)
}
