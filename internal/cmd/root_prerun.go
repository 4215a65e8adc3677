package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/config"
	"github.com/salmonumbrella/tbl-cli/internal/iocontext"
	"github.com/salmonumbrella/tbl-cli/internal/output"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

type globalFlagInput struct {
	queryFlag    string
	jqFlag       string
	jsonPathFlag string
	queryFile    string
	quietFlag    bool
	compactJSON  bool
	noColorFlag  bool
	errorFormat  string
}

type globalOptions struct {
	format          output.Format
	query           string
	queryNormalized bool
	jsonPathRaw     string
	quiet           bool
	compactJSON     bool
	noColor         bool
	errorFormat     string

	queryFlagSet     bool
	jqFlagSet        bool
	queryFileFlagSet bool
	outputFlagSet    bool
	formatFlagSet    bool
	jsonFlagSet      bool
}

func parseGlobalOptions(cmd *cobra.Command, cfg *config.Config, stdout io.Writer, flags globalFlagInput) (globalOptions, error) {
	opts := globalOptions{
		quiet:       flags.quietFlag,
		compactJSON: flags.compactJSON,
		noColor:     flags.noColorFlag,
		errorFormat: flags.errorFormat,

		queryFlagSet:     strings.TrimSpace(flags.queryFlag) != "",
		jqFlagSet:        strings.TrimSpace(flags.jqFlag) != "",
		queryFileFlagSet: strings.TrimSpace(flags.queryFile) != "",
		outputFlagSet:    commandFlagChanged(cmd, "output") || commandFlagChanged(cmd, "out"),
		formatFlagSet:    commandFlagChanged(cmd, "format"),
		jsonFlagSet:      commandFlagChanged(cmd, "json"),
	}

	// Output format precedence: --json, --format, --output, TBL_OUTPUT env,
	// config default, then json when stdout is not a terminal.
	formatStr, _ := cmd.Flags().GetString("output")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	if jsonFlag {
		formatStr = "json"
	} else if opts.formatFlagSet {
		formatStr, _ = cmd.Flags().GetString("format")
	} else if !opts.outputFlagSet && strings.TrimSpace(os.Getenv("TBL_OUTPUT")) != "" {
		formatStr = os.Getenv("TBL_OUTPUT")
	} else if !opts.outputFlagSet && cfg.GetOutput() != "" {
		formatStr = cfg.GetOutput()
	} else if !opts.outputFlagSet && !isTerminal(stdout) {
		formatStr = string(output.FormatJSON)
	}

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return globalOptions{}, err
	}
	opts.format = format

	if !cmd.Flags().Changed("quiet") && !isTerminal(stdout) {
		switch opts.format {
		case output.FormatJSON, output.FormatNDJSON, output.FormatYAML:
			opts.quiet = true
		}
	}

	opts.query = flags.queryFlag
	if opts.query == "" {
		opts.query = flags.jqFlag
	}
	if opts.queryFileFlagSet {
		loaded, err := readQueryFile(flags.queryFile)
		if err != nil {
			return globalOptions{}, err
		}
		opts.query = loaded
	}
	opts.query, opts.queryNormalized = output.NormalizeQuery(opts.query)

	opts.jsonPathRaw = strings.TrimSpace(flags.jsonPathFlag)

	return opts, nil
}

func validateGlobalOptions(opts *globalOptions) error {
	if opts.jqFlagSet && opts.queryFlagSet {
		return errOnlyOne("--query", "--jq")
	}
	if opts.queryFileFlagSet && (opts.jqFlagSet || opts.queryFlagSet) {
		return errOnlyOne("--query/--jq", "--query-file")
	}
	if opts.query != "" && opts.jsonPathRaw != "" {
		return errOnlyOne("--query/--jq/--query-file", "--jsonpath")
	}
	return validateErrorFormat(opts.errorFormat)
}

func buildRootContext(ctx context.Context, app *App, cfg *config.Config, opts globalOptions) context.Context {
	ctx = iocontext.WithIO(ctx, app.Stdout, app.Stderr)
	if app.Stdin != nil {
		ctx = iocontext.WithStdin(ctx, app.Stdin)
	}
	ctx = output.WithFormat(ctx, opts.format)
	ctx = output.WithQuery(ctx, opts.query)
	ctx = output.WithQuiet(ctx, opts.quiet)
	ctx = output.WithJSONPath(ctx, opts.jsonPathRaw)
	ctx = output.WithCompactJSON(ctx, opts.compactJSON)
	ctx = WithConfig(ctx, cfg)
	ctx = WithErrorFormat(ctx, opts.errorFormat)

	colorMode := ui.ParseColorMode(cfg.GetColor())
	if opts.noColor {
		colorMode = ui.ColorNever
	}
	ctx = ui.WithUI(ctx, ui.New(colorMode))
	return ctx
}

// readQueryFile loads a jq expression from a file, or stdin for "-".
func readQueryFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read query from stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func errOnlyOne(left, right string) error {
	return fmt.Errorf("use only one of %s or %s", left, right)
}

func commandFlagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}

	for current := cmd; current != nil; current = current.Parent() {
		if flag := current.Flags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
		if flag := current.PersistentFlags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
	}
	return false
}
