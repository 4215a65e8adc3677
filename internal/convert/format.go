package convert

import (
	"errors"
	"strings"
)

// Format identifies one of the table representations.
type Format string

const (
	// FormatMarkdown is a pipe table with an alignment separator row.
	FormatMarkdown Format = "markdown"
	// FormatJSON is a row-keyed JSON object. Output only; JSON input is
	// not a parseable table source.
	FormatJSON Format = "json"
	// FormatHTML is a <table> fragment.
	FormatHTML Format = "html"
	// FormatAuto asks the detector to pick the input format.
	FormatAuto Format = "auto"
)

// ParseFormat converts a string to an output Format.
// Empty string defaults to FormatMarkdown.
// Returns error if the format is invalid.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown, "md", "":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", errors.New("invalid format (expected markdown|json|html)")
	}
}

// ParseSourceFormat converts a string to an input Format for parsing.
// Empty string and "auto" defer to the detector. JSON is rejected because
// tables are only ever rendered to JSON, never read from it.
func ParseSourceFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatAuto, "":
		return FormatAuto, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", errors.New("invalid source format (expected auto|markdown|html)")
	}
}
