// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/query-miner/internal/search"
	"github.com/pdiddy/query-miner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and export endpoints over HTTP",
	Long: `Serve starts an HTTP server with these routes:

  POST /search/api              search results as JSON
  POST /search/export/{format}  results as a json, csv or yaml attachment
  GET  /healthz                 liveness probe
  GET  /metrics                 Prometheus metrics

Requests without a debug field use the configured default mode
(search.fixture). The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mode := search.ModeFor(cfg.Search.Fixture)
		if mode == search.ModeLive && (cfg.Google.APIKey == "" || cfg.Google.EngineID == "") {
			logger.Warn().Msg("Google credentials are not configured; live requests will fail")
		}

		srv := server.New(search.NewFetcher(cfg, logger), mode, logger)
		return srv.Run(ctx, cfg.Server)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
