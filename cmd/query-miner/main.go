// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the query-miner CLI.
// It runs Google Custom Search queries from the terminal and serves the
// search and export endpoints over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/query-miner/internal/config"
	"github.com/pdiddy/query-miner/internal/logging"
	"github.com/pdiddy/query-miner/internal/secrets"
	"github.com/pdiddy/query-miner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// v holds defaults, the config file, environment overrides and bound flags.
var v = config.New(version)

// cfg and logger are populated by the root command's PersistentPreRunE.
var (
	cfg    types.Config
	logger = zerolog.Nop()
)

// rootCmd is the base command for the query-miner CLI.
var rootCmd = &cobra.Command{
	Use:   "query-miner",
	Short: "Run Google Custom Search queries and export the results",
	Long: `query-miner sends a query to the Google Custom Search JSON API, or reads a
saved response from a fixture file, and normalizes the result into a query,
a total result count and a list of results with title, snippet, link and
display link.

Results can be printed as a table, written as JSON, CSV or YAML, or served
over HTTP with the serve subcommand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.ReadFile(v, cfgFile)
		if err != nil {
			return err
		}

		c, err := config.Load(v)
		if err != nil {
			return err
		}

		l, err := logging.New(c.Log, os.Stderr)
		if err != nil {
			return err
		}
		if used != "" {
			l.Debug().Str("file", used).Msg("Using config file")
		}

		s, err := secrets.Load(secrets.DefaultDir, l)
		if err != nil {
			return err
		}
		secrets.Apply(&c.Google, s)

		cfg, logger = c, l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./query-miner.yaml or ~/.config/query-miner/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
