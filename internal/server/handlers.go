// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/pdiddy/query-miner/internal/export"
	"github.com/pdiddy/query-miner/internal/metrics"
	"github.com/pdiddy/query-miner/internal/search"
	"github.com/pdiddy/query-miner/pkg/types"
)

const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error   string              `json:"error"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// fieldError is a validation failure tied to one input field.
type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string { return e.msg }

type searchRequest struct {
	Query string
	Mode  search.Mode
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	resp, ok := s.fetch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}

	resp, ok := s.fetch(w, r)
	if !ok {
		return
	}

	file, err := export.Render(format, resp, s.now())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	metrics.RecordExport(string(format))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

// fetch parses and validates the request and runs the fetch. On failure it
// has already written the error response and returns false.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) (*types.SearchResponse, bool) {
	req, err := s.parseRequest(w, r)
	if err != nil {
		writeRequestError(w, err)
		return nil, false
	}

	resp, err := s.fetcher.Fetch(r.Context(), req.Query, req.Mode)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("kind", search.KindOf(err).String()).Msg("Search failed")
		writeFetchError(w, err)
		return nil, false
	}
	return resp, true
}

// parseRequest reads q and the optional debug flag from a JSON body or
// from form values.
func (s *Server) parseRequest(w http.ResponseWriter, r *http.Request) (searchRequest, error) {
	var (
		q     string
		debug *bool
	)

	if isJSON(r.Header.Get("Content-Type")) {
		body, err := decodeJSONBody(w, r)
		if err != nil {
			return searchRequest{}, err
		}
		if raw, ok := body["q"]; ok && !isNull(raw) {
			if err := json.Unmarshal(raw, &q); err != nil {
				return searchRequest{}, &fieldError{field: "q", msg: "The q field must be a string."}
			}
		}
		if raw, ok := body["debug"]; ok && !isNull(raw) {
			b, err := parseBool(raw)
			if err != nil {
				return searchRequest{}, err
			}
			debug = &b
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return searchRequest{}, fmt.Errorf("malformed form body: %w", err)
		}
		q = r.FormValue("q")
		if v, ok := r.Form["debug"]; ok && len(v) > 0 && v[0] != "" {
			b, err := parseBoolText(v[0])
			if err != nil {
				return searchRequest{}, err
			}
			debug = &b
		}
	}

	query, err := search.ValidateQuery(q)
	if err != nil {
		return searchRequest{}, &fieldError{field: "q", msg: err.Error()}
	}

	mode := s.defaultMode
	if debug != nil {
		mode = search.ModeFor(*debug)
	}
	return searchRequest{Query: query, Mode: mode}, nil
}

// decodeJSONBody reads the request body as a JSON object. An empty body
// and an empty array both count as an object without fields.
func decodeJSONBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "[]" || isNull(data) {
		return map[string]json.RawMessage{}, nil
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("malformed JSON body: %w", err)
	}
	return body, nil
}

func parseBool(raw json.RawMessage) (bool, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, debugFieldError()
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case string:
		return parseBoolText(b)
	}
	return false, debugFieldError()
}

func parseBoolText(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, debugFieldError()
}

func debugFieldError() error {
	return &fieldError{field: "debug", msg: "The debug field must be true or false."}
}

func writeRequestError(w http.ResponseWriter, err error) {
	var fe *fieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:  fe.msg,
			Errors: map[string][]string{fe.field: {fe.msg}},
		})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

func writeFetchError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	var se *search.Error
	if errors.As(err, &se) {
		body.Details = se.Details
	}
	writeJSON(w, statusFor(err), body)
}

// statusFor maps a fetch failure onto an HTTP status: caller mistakes are
// 4xx, upstream failures 502, everything else 500.
func statusFor(err error) int {
	switch search.KindOf(err) {
	case search.KindValidation:
		return http.StatusUnprocessableEntity
	case search.KindTransport, search.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, `{"error":"encoding response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && (mt == "application/json" || strings.HasSuffix(mt, "+json"))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
