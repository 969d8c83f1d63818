package services

import (
	"bytes"
	"strings"

	"github.com/touka-study/touka-entry/internal/catalog"
)

// utf8BOM is prepended to exported CSV so spreadsheet tools pick up UTF-8.
const utf8BOM = "\xEF\xBB\xBF"

// csvCell renders one cell in the minimal-quote dialect used by the entry tool:
// a value is quoted (with internal quotes doubled) only when it contains a comma
// or a newline. A bare double quote without either trigger stays unquoted. This
// is intentionally narrower than RFC 4180 and is part of the export contract.
func csvCell(v string) string {
	if !strings.ContainsAny(v, ",\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// RenderCSV renders records into CSV text: one header row of field labels in
// catalog order, then one row per record in store order. Missing field values
// default to the empty string. Rows are LF-separated.
func RenderCSV(records []*SurveyRecord, fields []catalog.FieldDefinition) []byte {
	buf := &bytes.Buffer{}
	cells := make([]string, 0, len(fields))
	for _, f := range fields {
		cells = append(cells, csvCell(f.Label))
	}
	buf.WriteString(strings.Join(cells, ","))
	buf.WriteByte('\n')
	for _, rec := range records {
		cells = cells[:0]
		for _, f := range fields {
			cells = append(cells, csvCell(rec.Data[f.ID]))
		}
		buf.WriteString(strings.Join(cells, ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
