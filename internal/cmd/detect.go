package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/convert"
)

type detection struct {
	Format string `json:"format" yaml:"format"`
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "detect [file]",
		Aliases: []string{"det"},
		Short:   "Detect the table format of the input",
		Long: `Report whether the input looks like a Markdown table or an HTML table.

Exits non-zero when neither format is recognized. With --quiet, nothing
is printed and the exit code alone carries the answer.

Examples:
  tbl detect notes.md
  cat page.html | tbl detect`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := readInput(ctx, args)
			if err != nil {
				return err
			}

			format, err := convert.Detect(text)
			if err != nil {
				return err
			}

			// The explicit flag, not the context value: piping stdout
			// auto-quiets chatter but must not swallow the answer.
			if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
				return nil
			}
			printer := printerForContext(ctx)
			return printer.Print(ctx, detection{Format: string(format)})
		},
	}
}
