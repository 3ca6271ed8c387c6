// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/pdiddy/query-miner/pkg/types"
)

const jsonContentType = "application/json; charset=utf-8"

type jsonDocument struct {
	Query        string               `json:"query"`
	TotalResults *string              `json:"totalResults"`
	Results      []types.SearchResult `json:"results"`
	Raw          json.RawMessage      `json:"raw"`
}

// JSON renders the full response, raw payload included, as JSON indented
// with four spaces. Non-ASCII text and HTML characters are written
// literally, including text the upstream sent as \u escapes.
func JSON(resp *types.SearchResponse, now time.Time) File {
	doc := jsonDocument{
		Query:        resp.Query,
		TotalResults: resp.TotalResults,
		Results:      resp.Results,
		Raw:          literalJSON(resp.Raw),
	}
	if doc.Results == nil {
		doc.Results = []types.SearchResult{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	// Cannot fail: literalJSON always returns valid JSON.
	_ = enc.Encode(doc)

	return File{
		Name:        Filename(string(FormatJSON), now),
		ContentType: jsonContentType,
		Data:        buf.Bytes(),
	}
}

// literalJSON returns raw with every string re-encoded so that \uXXXX
// escapes become literal UTF-8. Key order and number literals are kept.
// Empty input becomes null and input that is not JSON becomes a JSON string.
func literalJSON(raw json.RawMessage) json.RawMessage {
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("null")
	}
	if !json.Valid(raw) {
		return encodeString(string(raw))
	}
	if !bytes.Contains(raw, []byte(`\u`)) {
		return raw
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var (
		buf   bytes.Buffer
		stack []frame
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			buf.WriteByte(byte(d))
			continue
		}

		if len(stack) > 0 {
			stack[len(stack)-1].separate(&buf)
		}

		switch v := tok.(type) {
		case json.Delim:
			stack = append(stack, frame{object: v == '{'})
			buf.WriteByte(byte(v))
		case string:
			buf.Write(encodeString(v))
		case json.Number:
			buf.WriteString(v.String())
		case bool:
			buf.WriteString(strconv.FormatBool(v))
		case nil:
			buf.WriteString("null")
		}
	}
	return buf.Bytes()
}

// frame tracks one open object or array while re-emitting tokens.
type frame struct {
	object bool
	n      int
}

// separate writes the comma or colon due before the next token.
func (f *frame) separate(buf *bytes.Buffer) {
	switch {
	case f.object && f.n%2 == 1:
		buf.WriteByte(':')
	case f.n > 0:
		buf.WriteByte(',')
	}
	f.n++
}

func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
