package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/convert"
	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/output"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

func newConvertCmd() *cobra.Command {
	var (
		fromFlag  string
		toFlag    string
		writeBack bool
	)

	cmd := &cobra.Command{
		Use:     "convert [file]",
		Aliases: []string{"conv"},
		Short:   "Convert a table between markdown, html, and json",
		Long: `Parse a Markdown or HTML table and render it in another format.

Reads from a file argument, or from stdin when the argument is missing
or "-". The input format is detected unless --from is given. The target
format defaults to the default_format config value, then markdown.

Examples:
  tbl convert notes.md --to json
  cat page.html | tbl convert --from html --to markdown
  tbl convert tasks.md --to markdown --write`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertRun(cmd.Context(), args, fromFlag, toFlag, writeBack)
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "auto", "Input format (auto, markdown, html)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Target format (markdown, json, html); defaults to config default_format, then markdown")
	cmd.Flags().BoolVarP(&writeBack, "write", "w", false, "Write the result back to the input file instead of stdout")

	return cmd
}

// newConvertShortcutCmd builds a fixed-target alias like "tbl json file.md".
func newConvertShortcutCmd(use string, target convert.Format, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short,
		Long:  fmt.Sprintf("%s.\n\nThis is a convenience alias for 'tbl convert --to %s'.", short, target),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertRun(cmd.Context(), args, "auto", string(target), false)
		},
	}
}

func convertRun(ctx context.Context, args []string, fromValue, toValue string, writeBack bool) error {
	writePath, err := resolveWritePath(writeBack, args)
	if err != nil {
		return err
	}

	text, err := readInput(ctx, args)
	if err != nil {
		return err
	}

	source, err := convert.ParseSourceFormat(fromValue)
	if err != nil {
		return clierrors.NewUserError(err.Error(), "Use --from auto, markdown, or html")
	}
	target, err := resolveTargetFormat(ctx, toValue)
	if err != nil {
		return err
	}

	m, err := convert.ParseAs(text, source)
	if err != nil {
		return err
	}

	rendered, err := convert.Serialize(m, target)
	if err != nil {
		return err
	}

	return writeResult(ctx, rendered, target, writePath)
}

// resolveTargetFormat picks the serialization target: the --to flag when
// given, otherwise the default_format config value, otherwise markdown.
func resolveTargetFormat(ctx context.Context, toValue string) (convert.Format, error) {
	if toValue == "" {
		if cfg := ConfigFromContext(ctx); cfg != nil {
			toValue = cfg.GetDefaultFormat()
		}
	}
	target, err := convert.ParseFormat(toValue)
	if err != nil {
		return "", clierrors.NewUserError(err.Error(), "Use --to markdown, json, or html")
	}
	return target, nil
}

// resolveWritePath validates --write against the positional args. Writing
// back requires a real file path, not stdin.
func resolveWritePath(writeBack bool, args []string) (string, error) {
	if !writeBack {
		return "", nil
	}
	if len(args) == 0 || args[0] == "-" {
		return "", clierrors.NewUserError("--write requires a file argument",
			"Pass the input as a file path, not stdin")
	}
	return args[0], nil
}

// writeResult prints a rendered table to stdout, or writes it back to the
// input file when --write was given. JSON renderings honor the global
// --query, --jsonpath, and --compact-json transforms.
func writeResult(ctx context.Context, rendered string, target convert.Format, writePath string) error {
	if writePath != "" {
		if err := os.WriteFile(writePath, []byte(rendered+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", writePath, err)
		}
		if !output.QuietFromContext(ctx) {
			ui.FromContext(ctx).Success("Wrote %s", writePath)
		}
		return nil
	}

	if target == convert.FormatJSON && hasJSONTransform(ctx) {
		var doc interface{}
		if err := json.Unmarshal([]byte(rendered), &doc); err != nil {
			return fmt.Errorf("failed to decode rendered JSON: %w", err)
		}
		return output.NewPrinter(stdoutFromContext(ctx), output.FormatJSON).Print(ctx, doc)
	}

	_, err := fmt.Fprintln(stdoutFromContext(ctx), rendered)
	return err
}

func hasJSONTransform(ctx context.Context) bool {
	return output.QueryFromContext(ctx) != "" ||
		output.JSONPathFromContext(ctx) != "" ||
		output.CompactJSONFromContext(ctx)
}
