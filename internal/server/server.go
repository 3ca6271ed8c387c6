// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the fetcher and the export formatters over HTTP.
//
// Routes:
//
//	POST /search/api              normalized SearchResponse as JSON
//	POST /search/export/{format}  attachment in json, csv or yaml
//	GET  /healthz                 liveness probe
//	GET  /metrics                 Prometheus metrics
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/query-miner/internal/metrics"
	"github.com/pdiddy/query-miner/internal/search"
	"github.com/pdiddy/query-miner/pkg/types"
)

const (
	requestIDHeader        = "X-Request-ID"
	defaultShutdownTimeout = 10 * time.Second
)

// Fetcher is the part of search.Fetcher the handlers need.
type Fetcher interface {
	Fetch(ctx context.Context, query string, mode search.Mode) (*types.SearchResponse, error)
}

// Server holds the handlers' collaborators. It keeps no per-request state.
type Server struct {
	fetcher     Fetcher
	defaultMode search.Mode
	log         zerolog.Logger
	now         func() time.Time
}

// New returns a Server. defaultMode applies to requests that do not
// carry a debug field.
func New(f Fetcher, defaultMode search.Mode, log zerolog.Logger) *Server {
	return &Server{
		fetcher:     f,
		defaultMode: defaultMode,
		log:         log.With().Str("component", "server").Logger(),
		now:         time.Now,
	}
}

// Handler returns the routed handler wrapped in logging and request-ID middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /search/api", s.handleSearch)
	mux.HandleFunc("POST /search/export/{format}", s.handleExport)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	var h http.Handler = mux
	h = requestID(h)
	h = hlog.AccessHandler(accessLog)(h)
	h = hlog.NewHandler(s.log)(h)
	return h
}

// Run listens on cfg.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, cfg types.ServerConfig) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, cfg)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// giving in-flight requests up to cfg.ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg types.ServerConfig) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("Listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestID tags each request with an ID, taken from the incoming
// X-Request-ID header when present, and adds it to the request logger.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("request_id", id)
		})
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("Request handled")
}
