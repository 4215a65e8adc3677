// Package table holds the canonical in-memory table and everything that
// operates on it directly: structural mutations, the bounded undo/redo
// history, checkbox-like value normalization, and read-only statistics.
//
// The canonical form is Model{Headers, Alignments, Rows}. Two shape rules
// hold whenever a Model is considered valid:
//   - len(Alignments) == len(Headers)
//   - every row has exactly len(Headers) cells
//
// Parsers and mutations enforce the second rule by padding short rows with
// empty strings and truncating long ones. The empty Model (no headers) is a
// legal state, not an error.
//
// A Session couples one live Model with one History. Sessions are not safe
// for concurrent use; callers that edit several tables at once create one
// Session per table.
//
// Example usage:
//
//	s := table.NewSession()
//	s.Replace(parsed)
//	if err := s.AddRow(); err != nil {
//	    log.Fatal(err)
//	}
//	if s.Undo() {
//	    fmt.Println("back to the parsed table")
//	}
package table
