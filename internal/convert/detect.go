package convert

import (
	"regexp"
	"strings"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
)

// htmlTablePattern matches a <table ...>...</table> span anywhere in the
// input, case-insensitively and non-greedily across newlines.
var htmlTablePattern = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)

// separatorCellPattern matches one alignment-separator cell: optional
// colons around three or more hyphens (---, :---, ---:, :---:). Two
// hyphens or fewer do not count.
var separatorCellPattern = regexp.MustCompile(`^:?-{3,}:?$`)

// Detect sniffs raw text and decides which parsing strategy applies.
// HTML wins when a <table> span is present. Otherwise the text must look
// like a Markdown table: at least one line with a pipe and at least one
// separator-shaped line. A lone pipe in prose is not a table.
func Detect(text string) (Format, error) {
	if htmlTablePattern.MatchString(text) {
		return FormatHTML, nil
	}

	hasPipe := false
	hasSeparator := false
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.Contains(line, "|") {
			hasPipe = true
		}
		if isSeparatorLine(line) {
			hasSeparator = true
		}
		if hasPipe && hasSeparator {
			return FormatMarkdown, nil
		}
	}

	return "", clierrors.NewParseError(clierrors.ParseFormatNotRecognized,
		"input is neither an HTML table nor a Markdown table",
		"Provide a <table> fragment or a pipe table with a separator row like | --- | --- |")
}

// isSeparatorLine reports whether every cell of the line is an
// alignment-separator cell.
func isSeparatorLine(line string) bool {
	cells := splitRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !separatorCellPattern.MatchString(cell) {
			return false
		}
	}
	return true
}
