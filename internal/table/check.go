package table

import "strings"

// Checkbox-like cell classification. Word and short tokens match after
// trimming and case folding; symbols match the trimmed value exactly. The
// checked and unchecked sets are disjoint and tests hold them to that.
// Only words and symbols are rewritten to the canonical marks; the short
// tokens classify but keep their spelling.
var (
	checkedWords = map[string]struct{}{
		"yes":  {},
		"true": {},
	}
	checkedShort = map[string]struct{}{
		"1": {},
		"y": {},
	}
	checkedSymbols = map[string]struct{}{
		"✅":  {},
		"✔️": {},
		"✔":  {},
		"✓":  {},
	}
	uncheckedWords = map[string]struct{}{
		"no":    {},
		"false": {},
	}
	uncheckedShort = map[string]struct{}{
		"0": {},
		"n": {},
	}
	uncheckedSymbols = map[string]struct{}{
		"❌":  {},
		"✖️": {},
		"✖":  {},
		"✗":  {},
		"×":  {},
	}
)

// CheckedMark and UncheckedMark are the canonical renderings for
// boolean-like cells.
const (
	CheckedMark   = "✅"
	UncheckedMark = "❌"
)

// IsChecked reports whether value reads as a boolean-true cell.
func IsChecked(value string) bool {
	trimmed := strings.TrimSpace(value)
	if _, ok := checkedSymbols[trimmed]; ok {
		return true
	}
	folded := strings.ToLower(trimmed)
	if _, ok := checkedWords[folded]; ok {
		return true
	}
	_, ok := checkedShort[folded]
	return ok
}

// IsUnchecked reports whether value reads as a boolean-false cell.
func IsUnchecked(value string) bool {
	trimmed := strings.TrimSpace(value)
	if _, ok := uncheckedSymbols[trimmed]; ok {
		return true
	}
	folded := strings.ToLower(trimmed)
	if _, ok := uncheckedWords[folded]; ok {
		return true
	}
	_, ok := uncheckedShort[folded]
	return ok
}

// NormalizeCheckValue maps the word and symbol spellings to CheckedMark and
// UncheckedMark. The short tokens ("1", "y", "0", "n") and everything else
// pass through unchanged, original casing and whitespace included, though
// IsChecked and IsUnchecked still classify them. Normalizing twice is a
// no-op.
func NormalizeCheckValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if _, ok := checkedSymbols[trimmed]; ok {
		return CheckedMark
	}
	if _, ok := uncheckedSymbols[trimmed]; ok {
		return UncheckedMark
	}
	folded := strings.ToLower(trimmed)
	if _, ok := checkedWords[folded]; ok {
		return CheckedMark
	}
	if _, ok := uncheckedWords[folded]; ok {
		return UncheckedMark
	}
	return value
}
