// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/query-miner/pkg/types"
)

const yamlContentType = "application/yaml; charset=utf-8"

// YAML renders the normalized response without the raw payload.
func YAML(resp *types.SearchResponse, now time.Time) File {
	doc := *resp
	if doc.Results == nil {
		doc.Results = []types.SearchResult{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// Cannot fail: the document holds only strings and string pointers.
	_ = enc.Encode(&doc)
	_ = enc.Close()

	return File{
		Name:        Filename(string(FormatYAML), now),
		ContentType: yamlContentType,
		Data:        buf.Bytes(),
	}
}
