package convert

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/salmonumbrella/tbl-cli/internal/table"
)

// RenderJSON writes the model as an object keyed by each row's first-column
// value. Rows whose first cell trims to empty contribute no key. A duplicate
// key keeps its first position in the output but takes the last row's
// cells. Each value maps every header except the first to that row's cell
// with checkbox classification applied. Keys stay in row order; the result
// is two-space indented.
func RenderJSON(m table.Model) string {
	if !m.Valid() {
		return "{}"
	}
	m = m.Clone()
	m.NormalizeRows()

	var keys []string
	objects := make(map[string]string, len(m.Rows))
	for _, row := range m.Rows {
		key := strings.TrimSpace(row[0])
		if key == "" {
			continue
		}
		if _, seen := objects[key]; !seen {
			keys = append(keys, key)
		}
		objects[key] = rowObjectJSON(m.Headers, row)
	}
	if len(keys) == 0 {
		return "{}"
	}

	var compact strings.Builder
	compact.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.WriteString(jsonString(key))
		compact.WriteByte(':')
		compact.WriteString(objects[key])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(compact.String()), "", "  "); err != nil {
		return compact.String()
	}
	return out.String()
}

// rowObjectJSON builds one row's value object in header order. A repeated
// header name collapses to a single key holding the last cell, the same
// way assigning object properties in order would. Boolean-like cells render
// as the canonical marks, short tokens included.
func rowObjectJSON(headers, row []string) string {
	var names []string
	cells := make(map[string]string, len(headers)-1)
	for i := 1; i < len(headers); i++ {
		if _, seen := cells[headers[i]]; !seen {
			names = append(names, headers[i])
		}
		cells[headers[i]] = classifyCell(row[i])
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(jsonString(name))
		b.WriteByte(':')
		b.WriteString(jsonString(cells[name]))
	}
	b.WriteByte('}')
	return b.String()
}

// classifyCell renders boolean-like values as the canonical marks. Unlike
// NormalizeCheckValue this also covers the short tokens, so a "1" or "y"
// cell serializes as a mark here while staying literal elsewhere.
func classifyCell(value string) string {
	switch {
	case table.IsChecked(value):
		return table.CheckedMark
	case table.IsUnchecked(value):
		return table.UncheckedMark
	default:
		return value
	}
}

// jsonString encodes s as a JSON string without HTML escaping, so cell
// text that holds character entities stays readable.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		data, _ := json.Marshal(s)
		return string(data)
	}
	return strings.TrimRight(buf.String(), "\n")
}
