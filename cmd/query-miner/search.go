// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/query-miner/internal/export"
	"github.com/pdiddy/query-miner/internal/search"
	"github.com/pdiddy/query-miner/pkg/types"
)

const formatTable = "table"

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one search query and print or export the results",
	Long: `Search sends the query to the Google Custom Search JSON API, or reads the
fixture file with --fixture, and prints the normalized results.

The default output is a table. With --format json, csv or yaml the export
document is written to stdout, or to a file named
search-results-<timestamp>.<ext> in --export-dir.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		exportDir, _ := cmd.Flags().GetString("export-dir")

		query, err := search.ValidateQuery(strings.Join(args, " "))
		if err != nil {
			return err
		}

		fetcher := search.NewFetcher(cfg, logger)
		resp, err := fetcher.Fetch(cmd.Context(), query, search.ModeFor(cfg.Search.Fixture))
		if err != nil {
			return err
		}

		return writeSearchOutput(cmd.OutOrStdout(), resp, format, exportDir, time.Now())
	},
}

// writeSearchOutput prints resp in the requested format, or writes the
// export file into exportDir when one is given.
func writeSearchOutput(w io.Writer, resp *types.SearchResponse, format, exportDir string, now time.Time) error {
	if format == formatTable {
		if exportDir != "" {
			return fmt.Errorf("--export-dir needs --format json, csv or yaml")
		}
		return export.FormatTable(resp, w)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	file, err := export.Render(f, resp, now)
	if err != nil {
		return err
	}

	if exportDir == "" {
		_, err := w.Write(file.Data)
		return err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", exportDir, err)
	}
	path := filepath.Join(exportDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info().Str("path", path).Int("results", len(resp.Results)).Msg("Export written")
	fmt.Fprintln(w, path)
	return nil
}

func init() {
	searchCmd.Flags().Bool("fixture", false, "read the fixture file instead of calling the live API")
	searchCmd.Flags().String("format", formatTable, "output format: table, json, csv or yaml")
	searchCmd.Flags().String("export-dir", "", "write the export file into this directory")
	_ = v.BindPFlag("search.fixture", searchCmd.Flags().Lookup("fixture"))

	rootCmd.AddCommand(searchCmd)
}
