// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches results for a query, either from the Google
// Custom Search API or from a local fixture document, and reduces them to
// the shape in pkg/types. Both sources go through the same normalization.
package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/query-miner/internal/httputil"
	"github.com/pdiddy/query-miner/internal/metrics"
	"github.com/pdiddy/query-miner/pkg/types"
)

// customSearchBase is the Custom Search JSON API endpoint. Tests point it
// at an httptest server.
var customSearchBase = "https://www.googleapis.com/customsearch/v1"

// DefaultFixturePath is the fixture read in fixture mode when none is configured.
const DefaultFixturePath = "example_result.json"

// resultCount is the num parameter sent upstream: the first page only.
const resultCount = 10

// Fetcher resolves queries. It keeps no state between calls and is safe
// for concurrent use.
type Fetcher struct {
	// Client performs the live call. Its Timeout bounds the call.
	Client *http.Client

	// Fixtures holds the fixture document at FixturePath.
	Fixtures    fs.FS
	FixturePath string

	Google    types.GoogleConfig
	UserAgent string

	Log zerolog.Logger
}

// NewFetcher builds a Fetcher from cfg. The fixture path is resolved
// against the working directory.
func NewFetcher(cfg types.Config, log zerolog.Logger) *Fetcher {
	path := cfg.Search.FixturePath
	if path == "" {
		path = DefaultFixturePath
	}
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}

	return &Fetcher{
		Client:      httputil.NewClient(cfg.Search.HTTPConfig),
		Fixtures:    os.DirFS(dir),
		FixturePath: name,
		Google:      cfg.Google,
		UserAgent:   cfg.Search.UserAgent,
		Log:         log.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch resolves query in the given mode. The query is used verbatim;
// validating it is the caller's job (see ValidateQuery). A failed fetch
// returns a nil response and an *Error.
func (f *Fetcher) Fetch(ctx context.Context, query string, mode Mode) (*types.SearchResponse, error) {
	start := time.Now()

	var (
		resp *types.SearchResponse
		err  error
	)
	switch mode {
	case ModeFixture:
		resp, err = f.fetchFixture(query)
	case ModeLive:
		resp, err = f.fetchLive(ctx, query)
	default:
		err = fmt.Errorf("unknown search mode %v", mode)
	}

	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordFetch(mode.String(), KindOf(err).String(), elapsed)
		f.Log.Warn().Err(err).Str("mode", mode.String()).Dur("elapsed", elapsed).Msg("Fetch failed")
		return nil, err
	}

	metrics.RecordFetch(mode.String(), metrics.OutcomeOK, elapsed)
	f.Log.Debug().
		Str("mode", mode.String()).
		Int("results", len(resp.Results)).
		Dur("elapsed", elapsed).
		Msg("Fetch completed")
	return resp, nil
}

func (f *Fetcher) fetchFixture(query string) (*types.SearchResponse, error) {
	if f.Fixtures == nil {
		return nil, &Error{Kind: KindFixtureNotFound, Message: "no fixture source configured"}
	}

	data, err := fs.ReadFile(f.Fixtures, f.FixturePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindFixtureNotFound, Message: fmt.Sprintf("%s fixture not found", f.FixturePath)}
		}
		return nil, &Error{Kind: KindInvalidPayload, Message: fmt.Sprintf("reading fixture %s", f.FixturePath), Err: err}
	}

	resp, err := normalize(query, data, fixtureItemsField)
	if err != nil {
		return nil, &Error{Kind: KindInvalidPayload, Message: fmt.Sprintf("parsing fixture %s", f.FixturePath), Err: err}
	}
	return resp, nil
}

func (f *Fetcher) fetchLive(ctx context.Context, query string) (*types.SearchResponse, error) {
	if f.Google.APIKey == "" || f.Google.EngineID == "" {
		return nil, &Error{
			Kind:    KindMissingConfiguration,
			Message: "Google API key or CX (search engine id) not configured. Set GOOGLE_API_KEY and GOOGLE_CX.",
		}
	}

	client := f.Client
	if client == nil {
		client = httputil.NewClient(types.HTTPConfig{})
	}
	if client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.Timeout)
		defer cancel()
	}

	params := url.Values{
		"key": {f.Google.APIKey},
		"cx":  {f.Google.EngineID},
		"q":   {query},
		"num": {strconv.Itoa(resultCount)},
	}

	res, err := httputil.Get(ctx, client, customSearchBase, params, f.UserAgent)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "HTTP request failed", Err: redactKey(err, f.Google.APIKey)}
	}

	if !res.OK() {
		return nil, &Error{
			Kind:    KindUpstream,
			Message: fmt.Sprintf("Google API request failed with HTTP %d", res.StatusCode),
			Status:  res.StatusCode,
			Details: string(res.Body),
		}
	}

	resp, err := normalize(query, res.Body, liveItemsField)
	if err != nil {
		return nil, &Error{Kind: KindInvalidPayload, Message: "parsing Google API response", Details: string(res.Body), Err: err}
	}
	return resp, nil
}

// redactKey strips the API key from a transport error. *url.Error embeds
// the full request URL, query string included.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	if u, perr := url.Parse(uerr.URL); perr == nil {
		q := u.Query()
		if q.Has("key") {
			q.Set("key", "REDACTED")
			u.RawQuery = q.Encode()
		}
		return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
	}
	return err
}
