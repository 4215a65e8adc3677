package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/salmonumbrella/tbl-cli/internal/config"
	"github.com/salmonumbrella/tbl-cli/internal/convert"
	"github.com/salmonumbrella/tbl-cli/internal/logging"
	"github.com/salmonumbrella/tbl-cli/internal/ui"
)

//go:embed help.txt
var rootHelpText string

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode    bool
		queryFlag    string
		jqFlag       string
		jsonPathFlag string
		queryFile    string
		errorFormat  string
		quietFlag    bool
		compactJSON  bool
		noColorFlag  bool
	)

	rootCmd := &cobra.Command{
		Use:   "tbl",
		Short: "Convert and edit Markdown, HTML, and JSON tables",
		Long:  `A command-line tool for parsing, converting, editing, and analyzing tables`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Ensure Cobra doesn't emit its own error/usage text; we handle error output centrally.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			// Configure slog based on debug flag
			logging.Setup(debugMode, app.Stderr)
			app.Debug = debugMode

			// Load config file (skip for config commands to avoid recursion)
			var cfg *config.Config
			if cmd.Name() != "config" && (cmd.Parent() == nil || cmd.Parent().Name() != "config") {
				loadedCfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loadedCfg
			} else {
				cfg = &config.Config{}
			}

			opts, err := parseGlobalOptions(cmd, cfg, app.Stdout, globalFlagInput{
				queryFlag:    queryFlag,
				jqFlag:       jqFlag,
				jsonPathFlag: jsonPathFlag,
				queryFile:    queryFile,
				quietFlag:    quietFlag,
				compactJSON:  compactJSON,
				noColorFlag:  noColorFlag,
				errorFormat:  errorFormat,
			})
			if err != nil {
				return err
			}
			if err := validateGlobalOptions(&opts); err != nil {
				return err
			}

			// Inject parsed global options into context so subcommands can access them.
			ctx := buildRootContext(cmd.Context(), app, cfg, opts)
			if opts.queryNormalized && !opts.quiet {
				ui.FromContext(ctx).Warning("Normalized --query by removing \\! (shell escape); use ! without backslash.")
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	// Set version info
	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tbl %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text|json|ndjson|table|yaml")
	// Alias --format to --output for agent discoverability
	rootCmd.PersistentFlags().String("format", "text", "Alias for --output")
	_ = rootCmd.PersistentFlags().MarkHidden("format")
	// Shorthand: --json is equivalent to -o json
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Shorthand for --output json")
	_ = rootCmd.PersistentFlags().MarkHidden("json")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "", "JQ expression to filter JSON output")
	// Alias --jq to --query for discoverability
	rootCmd.PersistentFlags().StringVar(&jqFlag, "jq", "", "Alias for --query")
	_ = rootCmd.PersistentFlags().MarkHidden("jq")
	rootCmd.PersistentFlags().StringVar(&jsonPathFlag, "jsonpath", "", "Extract a value using JSONPath (e.g. $.Task1.Done)")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read JQ expression from file ('-' for stdin)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	// Flag aliases for agent ergonomics
	flagAlias(rootCmd.PersistentFlags(), "output", "out")
	flagAlias(rootCmd.PersistentFlags(), "query", "qr")
	flagAlias(rootCmd.PersistentFlags(), "query-file", "qf")
	flagAlias(rootCmd.PersistentFlags(), "compact-json", "cj")

	// Register subcommands
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newREPLCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Action-first shortcuts for the common conversions.
	rootCmd.AddCommand(newConvertShortcutCmd("md", convert.FormatMarkdown, "Render the input table as Markdown"))
	rootCmd.AddCommand(newConvertShortcutCmd("json", convert.FormatJSON, "Render the input table as JSON"))
	rootCmd.AddCommand(newConvertShortcutCmd("html", convert.FormatHTML, "Render the input table as HTML"))

	// Use a curated root help menu optimized for humans and agents.
	installRootHelp(rootCmd)

	return rootCmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// flagAlias registers a hidden flag alias that shares the same underlying
// value. This allows shorter flag names (e.g. --out for --output) without
// duplicating the variable binding. The alias is hidden from help output.
func flagAlias(fs *pflag.FlagSet, name, alias string) {
	f := fs.Lookup(name)
	if f == nil {
		return
	}
	fs.AddFlag(&pflag.Flag{
		Name:        alias,
		Usage:       f.Usage,
		Value:       f.Value,
		DefValue:    f.DefValue,
		NoOptDefVal: f.NoOptDefVal,
		Hidden:      true,
	})
}

func installRootHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}

		_, _ = fmt.Fprint(cmd.OutOrStdout(), rootHelpText)
	})
}
