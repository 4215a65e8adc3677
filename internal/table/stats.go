package table

import (
	"fmt"
	"strings"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// Summary produces a one-line digest of checkbox-like columns:
//
//	| **Total** = <rows> | <checked>/<rows> | ... |
//
// with one checked/total fragment per column after the first. Returns ""
// for an empty or invalid model.
func Summary(m Model) string {
	if !m.Valid() {
		return ""
	}
	total := len(m.Rows)
	var b strings.Builder
	fmt.Fprintf(&b, "| **Total** = %d |", total)
	for col := 1; col < len(m.Headers); col++ {
		checked := 0
		for _, row := range m.Rows {
			if IsChecked(row[col]) {
				checked++
			}
		}
		fmt.Fprintf(&b, " %d/%d |", checked, total)
	}
	return b.String()
}

// Stats describes one column of the table.
type Stats struct {
	Column       string `json:"column" yaml:"column"`
	TotalCells   int    `json:"total_cells" yaml:"total_cells"`
	Distinct     int    `json:"distinct_values" yaml:"distinct_values"`
	EmptyCells   int    `json:"empty_cells" yaml:"empty_cells"`
	MostFrequent string `json:"most_frequent" yaml:"most_frequent"`
}

// ColumnStats scans the column at index once, left to right. The most
// frequent value keeps the first-encountered winner on ties. Whitespace-only
// cells count as empty.
func ColumnStats(m Model, index int) (*Stats, error) {
	if index < 0 || index >= len(m.Headers) {
		return nil, clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("column index %d out of range", index), "")
	}
	st := &Stats{
		Column:     m.Headers[index],
		TotalCells: len(m.Rows),
	}
	counts := make(map[string]int, len(m.Rows))
	best := 0
	for _, row := range m.Rows {
		cell := row[index]
		if strings.TrimSpace(cell) == "" {
			st.EmptyCells++
		}
		counts[cell]++
		if counts[cell] > best {
			best = counts[cell]
			st.MostFrequent = cell
		}
	}
	st.Distinct = len(counts)
	return st, nil
}

// AllColumnStats returns ColumnStats for every column in order.
func AllColumnStats(m Model) []*Stats {
	out := make([]*Stats, 0, len(m.Headers))
	for i := range m.Headers {
		st, err := ColumnStats(m, i)
		if err != nil {
			continue
		}
		out = append(out, st)
	}
	return out
}
