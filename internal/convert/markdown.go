package convert

import (
	"fmt"
	"strings"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

// splitRow splits one table line on pipes and trims each cell. A leading or
// trailing empty cell comes from writing the row with outer pipes and is
// dropped; interior empty cells are real and kept.
func splitRow(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// separatorAlignment derives a column alignment from its separator cell:
// colons on both sides center, a trailing colon alone right-aligns,
// anything else is left.
func separatorAlignment(cell string) table.Alignment {
	leading := strings.HasPrefix(cell, ":")
	trailing := strings.HasSuffix(cell, ":")
	switch {
	case leading && trailing:
		return table.AlignCenter
	case trailing:
		return table.AlignRight
	default:
		return table.AlignLeft
	}
}

// ParseMarkdown reads a pipe table: header line, separator line, then data
// rows. Data rows of the wrong width are padded or truncated to the header
// count, never rejected.
func ParseMarkdown(text string) (table.Model, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseMalformedTable,
			"a Markdown table needs at least a header row and a separator row",
			"Add a separator line like | --- | --- | under the header")
	}

	headers := splitRow(lines[0])
	separator := splitRow(lines[1])
	if len(headers) != len(separator) {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseColumnCountMismatch,
			fmt.Sprintf("header row has %d columns but separator row has %d", len(headers), len(separator)),
			"Give the separator row one cell per header column")
	}
	if len(headers) == 0 {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseMalformedTable,
			"the header row has no cells",
			"Start the table with a header row like | Name | Done |")
	}

	for i := range headers {
		headers[i] = table.EscapeCell(headers[i])
	}
	alignments := make([]table.Alignment, len(separator))
	for i, cell := range separator {
		alignments[i] = separatorAlignment(cell)
	}

	rows := make([][]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		cells := table.FitRow(splitRow(line), len(headers))
		for i := range cells {
			cells[i] = table.NormalizeCheckValue(table.EscapeCell(cells[i]))
		}
		rows = append(rows, cells)
	}

	return table.Model{Headers: headers, Alignments: alignments, Rows: rows}, nil
}

// RenderMarkdown writes the model as a pipe table with outer pipes and an
// alignment separator row. Checkbox normalization is re-applied to every
// data cell; it is idempotent so already-normalized tables render stably.
func RenderMarkdown(m table.Model) string {
	if !m.Valid() {
		return ""
	}
	m = m.Clone()
	m.NormalizeRows()

	var b strings.Builder
	writeMarkdownRow(&b, m.Headers)

	tokens := make([]string, len(m.Alignments))
	for i, a := range m.Alignments {
		tokens[i] = alignmentToken(a)
	}
	b.WriteByte('\n')
	writeMarkdownRow(&b, tokens)

	for _, row := range m.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = table.NormalizeCheckValue(cell)
		}
		b.WriteByte('\n')
		writeMarkdownRow(&b, cells)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |")
}

// alignmentToken is the fixed separator cell per alignment. Left keeps its
// leading colon so a rendered table re-parses to the same alignments.
func alignmentToken(a table.Alignment) string {
	switch a {
	case table.AlignCenter:
		return ":---:"
	case table.AlignRight:
		return "---:"
	default:
		return ":---"
	}
}
