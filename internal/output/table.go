package output

import (
	"fmt"
	"text/tabwriter"
)

// Table is a pre-rendered cell grid for table output. The edit command
// builds one straight from the canonical model when the user asks for
// --output table, so converted tables can land in a terminal without pipe
// syntax around them.
type Table struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// printTableFromTable outputs a pre-built Table. Headers print as given;
// unlike the struct and map paths nothing is uppercased here, because these
// headers are table content, not field names.
func (p *Printer) printTableFromTable(t Table) error {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)

	if len(t.Headers) > 0 {
		for i, h := range t.Headers {
			if i > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			_, _ = fmt.Fprint(tw, h)
		}
		_, _ = fmt.Fprintln(tw)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i > 0 {
				_, _ = fmt.Fprint(tw, "\t")
			}
			_, _ = fmt.Fprint(tw, cell)
		}
		_, _ = fmt.Fprintln(tw)
	}

	return tw.Flush()
}
