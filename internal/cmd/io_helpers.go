package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/salmonumbrella/tbl-cli/internal/iocontext"
	"github.com/salmonumbrella/tbl-cli/internal/output"
)

func stdoutFromContext(ctx context.Context) io.Writer {
	return iocontext.StdoutOrDefault(ctx, os.Stdout)
}

func stderrFromContext(ctx context.Context) io.Writer {
	return iocontext.StderrOrDefault(ctx, os.Stderr)
}

func stdinFromContext(ctx context.Context) io.Reader {
	return iocontext.StdinOrDefault(ctx, os.Stdin)
}

func printerForContext(ctx context.Context) *output.Printer {
	return output.NewPrinter(stdoutFromContext(ctx), output.FormatFromContext(ctx))
}

// readInput returns table text from the first positional argument, treated
// as a file path, or from stdin when the argument is missing or "-".
func readInput(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdinFromContext(ctx))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
