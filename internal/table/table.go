package table

// Alignment is the per-column text justification. It is independent of cell
// content and survives every structural mutation alongside its header.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Model is the canonical table every format converts to and from.
type Model struct {
	Headers    []string
	Alignments []Alignment
	Rows       [][]string
}

// Valid reports whether the model is non-empty and its alignments line up
// with its headers. The empty model is representable but not valid.
func (m Model) Valid() bool {
	return len(m.Headers) > 0 && len(m.Alignments) == len(m.Headers)
}

// IsEmpty reports whether the model has no columns at all.
func (m Model) IsEmpty() bool {
	return len(m.Headers) == 0
}

// ColumnCount returns the number of columns.
func (m Model) ColumnCount() int {
	return len(m.Headers)
}

// RowCount returns the number of data rows.
func (m Model) RowCount() int {
	return len(m.Rows)
}

// Clone returns a deep copy. History snapshots and session accessors rely on
// this so that no caller ever aliases live storage.
func (m Model) Clone() Model {
	out := Model{
		Headers:    make([]string, len(m.Headers)),
		Alignments: make([]Alignment, len(m.Alignments)),
		Rows:       make([][]string, len(m.Rows)),
	}
	copy(out.Headers, m.Headers)
	copy(out.Alignments, m.Alignments)
	for i, row := range m.Rows {
		out.Rows[i] = make([]string, len(row))
		copy(out.Rows[i], row)
	}
	return out
}

// NormalizeRows pads or truncates every row to the header count. It never
// fails; shape mismatches are adjusted, not reported.
func (m *Model) NormalizeRows() {
	want := len(m.Headers)
	for i, row := range m.Rows {
		m.Rows[i] = FitRow(row, want)
	}
}

// FitRow returns row adjusted to exactly want cells: excess cells are cut on
// the right, missing cells are filled with empty strings.
func FitRow(row []string, want int) []string {
	if len(row) == want {
		return row
	}
	if len(row) > want {
		return row[:want]
	}
	out := make([]string, want)
	copy(out, row)
	return out
}
