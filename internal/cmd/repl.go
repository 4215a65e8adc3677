package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/repl"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

func newREPLCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:     "repl [file]",
		Aliases: []string{"shell"},
		Short:   "Interactive table editing session",
		Long: `Start an interactive session for loading, editing, and rendering tables.

Line editing, tab completion, and persistent history are supported.
Type "help" inside the session for the command list.

Examples:
  tbl repl
  tbl repl tasks.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			historyPath := ""
			if cfg := ConfigFromContext(ctx); cfg != nil && !noHistory {
				if p, err := cfg.HistoryPath(); err == nil {
					historyPath = p
				}
			}

			banner := fmt.Sprintf("tbl %s. Type 'help' for commands, 'exit' to quit.", cmd.Root().Version)
			r := repl.New(stdoutFromContext(ctx), ui.FromContext(ctx), historyPath, banner)
			if len(args) == 1 {
				if err := r.LoadFile(args[0]); err != nil {
					return err
				}
			}
			return r.Loop()
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not read or write the history file")

	return cmd
}
