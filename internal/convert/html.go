package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

// textAlignPattern pulls a center/right value out of an inline style.
var textAlignPattern = regexp.MustCompile(`text-align\s*:\s*(center|right)`)

// ParseHTML reads the first <table> in the input. The header row is the
// first <thead> row, else the first row holding a <th>, else the first row
// of the table. Data cells with colspan="N" flatten into the cell text
// followed by N-1 empty placeholders so column positions survive.
func ParseHTML(text string) (table.Model, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return table.Model{}, clierrors.WrapParseError(err, clierrors.ParseHTML,
			"failed to parse HTML input", "Check the markup for syntax errors")
	}

	tbl := doc.Find("table").First()
	if tbl.Length() == 0 {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseNoTableFound,
			"no <table> element found in the input",
			"Wrap the rows in a <table> element")
	}

	rows := tbl.Find("tr")
	if rows.Length() == 0 {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseNoHeaderRow,
			"the table has no rows",
			"Add at least a header row")
	}

	headerRow := findHeaderRow(tbl, rows)
	headerCells := headerRow.ChildrenFiltered("th, td")
	if headerCells.Length() == 0 {
		return table.Model{}, clierrors.NewParseError(clierrors.ParseNoHeadersFound,
			"the header row has no cells",
			"Give the first row at least one <th> or <td>")
	}

	headers := make([]string, 0, headerCells.Length())
	alignments := make([]table.Alignment, 0, headerCells.Length())
	headerCells.Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, table.EscapeCell(strings.TrimSpace(cell.Text())))
		alignments = append(alignments, headerAlignment(cell))
	})

	var dataRows [][]string
	for _, tr := range bodyRows(tbl, headerRow) {
		cells := table.FitRow(rowCells(tr, len(headers)), len(headers))
		dataRows = append(dataRows, cells)
	}

	return table.Model{Headers: headers, Alignments: alignments, Rows: dataRows}, nil
}

// findHeaderRow picks the header row: a <thead> row first, then the first
// row containing a <th>, then the first row overall.
func findHeaderRow(tbl, rows *goquery.Selection) *goquery.Selection {
	if head := tbl.Find("thead tr").First(); head.Length() > 0 {
		return head
	}
	var withTH *goquery.Selection
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if tr.ChildrenFiltered("th").Length() > 0 {
			withTH = tr
			return false
		}
		return true
	})
	if withTH != nil {
		return withTH
	}
	return rows.First()
}

// bodyRows returns the data rows in document order: rows of the body
// sections when the table has them, all rows otherwise, always excluding
// the header row and anything before it.
func bodyRows(tbl, headerRow *goquery.Selection) []*goquery.Selection {
	candidates := tbl.Find("tbody tr")
	if candidates.Length() == 0 {
		candidates = tbl.Find("tr")
	}

	headerNode := headerRow.Get(0)
	headerInside := false
	candidates.Each(func(_ int, tr *goquery.Selection) {
		if tr.Get(0) == headerNode {
			headerInside = true
		}
	})

	var out []*goquery.Selection
	collect := !headerInside
	candidates.Each(func(_ int, tr *goquery.Selection) {
		if tr.Get(0) == headerNode {
			collect = true
			return
		}
		if collect {
			out = append(out, tr)
		}
	})
	return out
}

// headerAlignment infers a column alignment from its header cell, checking
// class names first, then inline style, then the legacy align attribute.
func headerAlignment(cell *goquery.Selection) table.Alignment {
	for _, token := range strings.Fields(cell.AttrOr("class", "")) {
		switch strings.ToLower(token) {
		case "text-center", "center":
			return table.AlignCenter
		case "text-right", "right":
			return table.AlignRight
		}
	}
	style := strings.ToLower(cell.AttrOr("style", ""))
	if m := textAlignPattern.FindStringSubmatch(style); m != nil {
		if m[1] == "center" {
			return table.AlignCenter
		}
		return table.AlignRight
	}
	switch strings.ToLower(cell.AttrOr("align", "")) {
	case "center":
		return table.AlignCenter
	case "right":
		return table.AlignRight
	}
	return table.AlignLeft
}

// rowCells extracts one data row, expanding colspan into empty placeholder
// cells. Placeholder expansion stops at max so a runaway colspan cannot
// blow up the row.
func rowCells(tr *goquery.Selection, max int) []string {
	var cells []string
	tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		text := strings.TrimSpace(cell.Text())
		cells = append(cells, table.NormalizeCheckValue(table.EscapeCell(text)))

		span, err := strconv.Atoi(cell.AttrOr("colspan", "1"))
		if err != nil || span < 1 {
			span = 1
		}
		for k := 1; k < span && len(cells) < max; k++ {
			cells = append(cells, "")
		}
	})
	return cells
}

// RenderHTML writes the model as a table fragment with a <thead> of <th>
// and a <tbody> of <td> cells. Non-left alignments become text-center or
// text-right classes; presentation stays stylesheet-driven. Cell text is
// stored escaped, so it is written as-is.
func RenderHTML(m table.Model) string {
	if !m.Valid() {
		return ""
	}
	m = m.Clone()
	m.NormalizeRows()

	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>\n")
	for i, h := range m.Headers {
		b.WriteString("      ")
		writeCellTag(&b, "th", m.Alignments[i], h)
		b.WriteByte('\n')
	}
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")
	for _, row := range m.Rows {
		b.WriteString("    <tr>\n")
		for i, cell := range row {
			b.WriteString("      ")
			writeCellTag(&b, "td", m.Alignments[i], table.NormalizeCheckValue(cell))
			b.WriteByte('\n')
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")
	return b.String()
}

func writeCellTag(b *strings.Builder, tag string, a table.Alignment, text string) {
	if class := alignmentClass(a); class != "" {
		fmt.Fprintf(b, "<%s class=%q>%s</%s>", tag, class, text, tag)
		return
	}
	fmt.Fprintf(b, "<%s>%s</%s>", tag, text, tag)
}

func alignmentClass(a table.Alignment) string {
	switch a {
	case table.AlignCenter:
		return "text-center"
	case table.AlignRight:
		return "text-right"
	default:
		return ""
	}
}
