package convert

import (
	"fmt"
	"strings"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

// Parse detects the input format and runs the matching strategy. Empty or
// whitespace-only input fails before detection.
func Parse(text string) (table.Model, error) {
	return ParseAs(text, FormatAuto)
}

// ParseAs parses with a fixed strategy, or detects one when source is
// FormatAuto.
func ParseAs(text string, source Format) (table.Model, error) {
	if strings.TrimSpace(text) == "" {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseEmptyInput,
			"input is empty",
			"Provide a Markdown or HTML table to convert")
	}

	if source == FormatAuto {
		detected, err := Detect(text)
		if err != nil {
			return table.Model{}, err
		}
		source = detected
	}

	switch source {
	case FormatMarkdown:
		return ParseMarkdown(text)
	case FormatHTML:
		return ParseHTML(text)
	default:
		return table.Model{}, clierrors.NewParseError(clierrors.ParseFormatNotRecognized,
			fmt.Sprintf("cannot parse from format %q", source),
			"Parse from markdown or html")
	}
}

// Serialize renders the model in the given output format. The mapping is
// exhaustive over the three formats; an empty or invalid model yields the
// format's empty output instead of an error.
func Serialize(m table.Model, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return RenderMarkdown(m), nil
	case FormatJSON:
		return RenderJSON(m), nil
	case FormatHTML:
		return RenderHTML(m), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
