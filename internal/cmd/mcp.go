package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salmonumbrella/tbl-cli/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
		Long: `Expose table conversion and editing as MCP tools.

The server speaks the Model Context Protocol over stdio, for use from
agent runtimes that manage tool servers.`,
	}

	cmd.AddCommand(newMCPServeCmd())

	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long: `Run the MCP server, reading requests from stdin and writing responses
to stdout. Registers the table_convert, table_edit, and table_stats tools.

Example client configuration:

  {"command": "tbl", "args": ["mcp", "serve"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcpserver.ServeStdio(cmd.Root().Version)
		},
	}
}
