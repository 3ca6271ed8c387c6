// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/pdiddy/query-miner/pkg/types"
)

const csvContentType = "text/csv; charset=utf-8"

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvColumns = []string{"title", "snippet", "link", "displayLink"}

// CSV renders results as a BOM-prefixed CSV. Every field is double-quoted,
// embedded quotes are doubled, nil fields become "" and every row,
// the header included, ends with CRLF.
func CSV(results []types.SearchResult, now time.Time) File {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	writeCSVRow(&buf, csvColumns...)
	for _, r := range results {
		writeCSVRow(&buf,
			types.Value(r.Title),
			types.Value(r.Snippet),
			types.Value(r.Link),
			types.Value(r.DisplayLink),
		)
	}

	return File{
		Name:        Filename(string(FormatCSV), now),
		ContentType: csvContentType,
		Data:        buf.Bytes(),
	}
}

func writeCSVRow(buf *bytes.Buffer, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
