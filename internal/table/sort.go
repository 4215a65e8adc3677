package table

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// SortRows stable-sorts rows by their first-column value using
// case-insensitive, numeric-aware collation, so "Item 2" sorts before
// "Item 10". Rows whose first cell is empty or whitespace go after all
// non-empty rows and keep their relative order.
func (s *Session) SortRows() error {
	if len(s.model.Rows) < 2 {
		return clierrors.NewEditError(clierrors.EditInsufficientRows,
			"need at least 2 rows to sort",
			"Add rows before sorting")
	}
	s.baseline()
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	rows := s.model.Rows
	sort.SliceStable(rows, func(i, j int) bool {
		a := strings.TrimSpace(rows[i][0])
		b := strings.TrimSpace(rows[j][0])
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return c.CompareString(a, b) < 0
	})
	s.commit()
	return nil
}
