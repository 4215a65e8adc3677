package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/convert"
	"github.com/salmonumbrella/tbl-cli/internal/output"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

type statsReport struct {
	Summary string         `json:"summary" yaml:"summary"`
	Columns []*table.Stats `json:"columns" yaml:"columns"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stats [file]",
		Aliases: []string{"analyze"},
		Short:   "Column statistics and a checkbox summary",
		Long: `Parse a table and report per-column statistics: total cells, distinct
values, empty cells, and the most frequent value. The summary line counts
checked cells per column after the first.

Examples:
  tbl stats tasks.md
  tbl stats tasks.md -o json
  cat page.html | tbl stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := readInput(ctx, args)
			if err != nil {
				return err
			}

			m, err := convert.Parse(text)
			if err != nil {
				return err
			}

			report := statsReport{
				Summary: table.Summary(m),
				Columns: table.AllColumnStats(m),
			}

			// Human output is a summary line plus an aligned column table.
			// Structured formats get the whole report as one document.
			switch output.FormatFromContext(ctx) {
			case output.FormatText, output.FormatTable:
				out := stdoutFromContext(ctx)
				_, _ = fmt.Fprintln(out, report.Summary)
				if len(report.Columns) == 0 {
					return nil
				}
				_, _ = fmt.Fprintln(out)
				printer := output.NewPrinter(out, output.FormatTable)
				return printer.Print(ctx, report.Columns)
			default:
				return printerForContext(ctx).Print(ctx, report)
			}
		},
	}
}
