package table

import (
	"fmt"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// DefaultHeader is the header given to columns created by AddColumn.
const DefaultHeader = "New Column"

// Session couples one live model with its undo history. Every successful
// state change records a snapshot, and a snapshot of the pre-change state is
// guaranteed to exist first, so each change is individually undoable. A
// rejected operation touches neither the model nor the history.
//
// Sessions are single-owner: one table being edited at a time, no internal
// locking.
type Session struct {
	model   Model
	history *History
}

// NewSession returns a session holding the empty model and empty history.
func NewSession() *Session {
	return &Session{history: NewHistory()}
}

// Model returns a deep copy of the live model. Callers can hold or mutate
// the copy freely without touching session state.
func (s *Session) Model() Model {
	return s.model.Clone()
}

// History exposes the undo history for status reporting.
func (s *Session) History() *History {
	return s.history
}

// baseline records the pre-change state once, so the very first change in a
// fresh session can still be undone.
func (s *Session) baseline() {
	if s.history.Len() == 0 {
		s.history.Save(s.model)
	}
}

// commit records the post-change state as the new current snapshot.
func (s *Session) commit() {
	s.history.Save(s.model)
}

// Replace swaps in a new model wholesale, as after a successful parse.
func (s *Session) Replace(m Model) {
	s.baseline()
	s.model = m.Clone()
	s.model.NormalizeRows()
	s.commit()
}

// Clear resets the session to the empty model. The cleared-away table stays
// in history and can be undone back. Clearing an already-empty session
// records nothing.
func (s *Session) Clear() {
	if s.model.IsEmpty() {
		return
	}
	s.baseline()
	s.model = Model{}
	s.commit()
}

// AddColumn appends a column named DefaultHeader with left alignment and an
// empty cell in every row. It cannot fail.
func (s *Session) AddColumn() {
	s.baseline()
	s.model.Headers = append(s.model.Headers, DefaultHeader)
	s.model.Alignments = append(s.model.Alignments, AlignLeft)
	for i := range s.model.Rows {
		s.model.Rows[i] = append(s.model.Rows[i], "")
	}
	s.commit()
}

// AddRow appends a row of empty cells sized to the current column count.
func (s *Session) AddRow() error {
	if len(s.model.Headers) == 0 {
		return clierrors.NewEditError(clierrors.EditNoColumnsDefined,
			"cannot add a row to a table with no columns",
			"Add a column first")
	}
	s.baseline()
	s.model.Rows = append(s.model.Rows, make([]string, len(s.model.Headers)))
	s.commit()
	return nil
}

// RemoveColumn removes the column at index, or the last column when index
// is negative. Headers, alignments, and every row shrink together.
func (s *Session) RemoveColumn(index int) error {
	cols := len(s.model.Headers)
	if cols == 0 {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			"no columns to remove", "")
	}
	if cols == 1 {
		return clierrors.NewEditError(clierrors.EditCannotRemoveLastColumn,
			"cannot remove the last column",
			"A non-empty table keeps at least one column; use clear to discard the table")
	}
	if index < 0 {
		index = cols - 1
	}
	if index >= cols {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("column index %d out of range (0-%d)", index, cols-1), "")
	}
	s.baseline()
	s.model.Headers = append(s.model.Headers[:index], s.model.Headers[index+1:]...)
	s.model.Alignments = append(s.model.Alignments[:index], s.model.Alignments[index+1:]...)
	for i, row := range s.model.Rows {
		s.model.Rows[i] = append(row[:index], row[index+1:]...)
	}
	s.commit()
	return nil
}

// RemoveRow removes the row at index, or the last row when index is
// negative.
func (s *Session) RemoveRow(index int) error {
	rows := len(s.model.Rows)
	if rows == 0 {
		return clierrors.NewEditError(clierrors.EditNoRowsToRemove,
			"no rows to remove", "")
	}
	if index < 0 {
		index = rows - 1
	}
	if index >= rows {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("row index %d out of range (0-%d)", index, rows-1), "")
	}
	s.baseline()
	s.model.Rows = append(s.model.Rows[:index], s.model.Rows[index+1:]...)
	s.commit()
	return nil
}

// MoveColumn moves the column at from to position to, shifting headers,
// alignments, and every row identically. Equal indices are a no-op that
// records nothing.
func (s *Session) MoveColumn(from, to int) error {
	cols := len(s.model.Headers)
	if err := checkMoveRange("column", from, to, cols); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	s.baseline()
	s.model.Headers = moveString(s.model.Headers, from, to)
	s.model.Alignments = moveAlignment(s.model.Alignments, from, to)
	for i, row := range s.model.Rows {
		s.model.Rows[i] = moveString(row, from, to)
	}
	s.commit()
	return nil
}

// MoveRow moves the row at from to position to. Equal indices are a no-op
// that records nothing.
func (s *Session) MoveRow(from, to int) error {
	if err := checkMoveRange("row", from, to, len(s.model.Rows)); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	s.baseline()
	row := s.model.Rows[from]
	rest := append(s.model.Rows[:from], s.model.Rows[from+1:]...)
	s.model.Rows = insertRow(rest, to, row)
	s.commit()
	return nil
}

// DuplicateRow inserts a copy of the row at index immediately after it.
func (s *Session) DuplicateRow(index int) error {
	if index < 0 || index >= len(s.model.Rows) {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("row index %d out of range", index), "")
	}
	s.baseline()
	dup := make([]string, len(s.model.Rows[index]))
	copy(dup, s.model.Rows[index])
	s.model.Rows = insertRow(s.model.Rows, index+1, dup)
	s.commit()
	return nil
}

// InsertRowAfter inserts an empty row immediately after index.
func (s *Session) InsertRowAfter(index int) error {
	if len(s.model.Headers) == 0 {
		return clierrors.NewEditError(clierrors.EditNoColumnsDefined,
			"cannot insert a row into a table with no columns",
			"Add a column first")
	}
	if index < 0 || index >= len(s.model.Rows) {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("row index %d out of range", index), "")
	}
	s.baseline()
	s.model.Rows = insertRow(s.model.Rows, index+1, make([]string, len(s.model.Headers)))
	s.commit()
	return nil
}

// SetCell replaces the cell at (row, col). The value goes through the same
// escaping and checkbox normalization as parsed cells, so edited tables
// stay safe to render as HTML.
func (s *Session) SetCell(row, col int, value string) error {
	if row < 0 || row >= len(s.model.Rows) {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("row index %d out of range", row), "")
	}
	if col < 0 || col >= len(s.model.Headers) {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("column index %d out of range", col), "")
	}
	s.baseline()
	s.model.Rows[row][col] = NormalizeCheckValue(EscapeCell(value))
	s.commit()
	return nil
}

// SetHeader renames the column at col. The new name is escaped like any
// other cell text.
func (s *Session) SetHeader(col int, name string) error {
	if col < 0 || col >= len(s.model.Headers) {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("column index %d out of range", col), "")
	}
	s.baseline()
	s.model.Headers[col] = EscapeCell(name)
	s.commit()
	return nil
}

// Undo restores the previous snapshot into the live model. Returns false
// when there is nothing to undo.
func (s *Session) Undo() bool {
	m, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.model = m
	return true
}

// Redo restores the next snapshot after an undo. Returns false when the
// cursor is already at the newest state.
func (s *Session) Redo() bool {
	m, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.model = m
	return true
}

func checkMoveRange(what string, from, to, n int) error {
	if from < 0 || from >= n || to < 0 || to >= n {
		return clierrors.NewEditError(clierrors.EditInvalidIndex,
			fmt.Sprintf("%s move %d -> %d out of range (%d %ss)", what, from, to, n, what), "")
	}
	return nil
}

func moveString(s []string, from, to int) []string {
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s, "")
	copy(s[to+1:], s[to:])
	s[to] = v
	return s
}

func moveAlignment(s []Alignment, from, to int) []Alignment {
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s, AlignLeft)
	copy(s[to+1:], s[to:])
	s[to] = v
	return s
}

func insertRow(rows [][]string, at int, row []string) [][]string {
	rows = append(rows, nil)
	copy(rows[at+1:], rows[at:])
	rows[at] = row
	return rows
}
