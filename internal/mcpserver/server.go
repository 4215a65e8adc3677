// Package mcpserver exposes the table converter as a local MCP stdio
// server, so agent hosts can convert, edit, and summarize tables as tool
// calls. No auth: the server only ever speaks over its own stdin/stdout.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/salmonumbrella/tbl-cli/internal/convert"
	clierrors "github.com/salmonumbrella/tbl-cli/internal/errors"
	"github.com/salmonumbrella/tbl-cli/internal/logging"
	"github.com/salmonumbrella/tbl-cli/internal/table"
)

const serverName = "tbl"

// New builds the MCP server with the table tools registered.
func New(version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("table_convert",
		mcp.WithDescription("Convert a Markdown or HTML table to markdown, json, or html."),
		mcp.WithString("text", mcp.Required(),
			mcp.Description("Table text to parse")),
		mcp.WithString("from",
			mcp.Description("Input format: auto, markdown, or html (default auto)")),
		mcp.WithString("to",
			mcp.Description("Output format: markdown, json, or html (default markdown)")),
	), handleConvert)

	s.AddTool(mcp.NewTool("table_edit",
		mcp.WithDescription("Apply edit operations to a table and return the result."),
		mcp.WithString("text", mcp.Required(),
			mcp.Description("Table text to parse")),
		mcp.WithString("operations", mcp.Required(),
			mcp.Description("Comma-separated operations: add-row, add-column, "+
				"remove-row[=i], remove-column[=i], move-row=from:to, "+
				"move-column=from:to, sort, duplicate-row=i, insert-after=i, "+
				"set=row:col:value")),
		mcp.WithString("to",
			mcp.Description("Output format: markdown, json, or html (default markdown)")),
	), handleEdit)

	s.AddTool(mcp.NewTool("table_stats",
		mcp.WithDescription("Summarize a table: checkbox totals plus per-column statistics as JSON."),
		mcp.WithString("text", mcp.Required(),
			mcp.Description("Table text to parse")),
	), handleStats)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(version string) error {
	logging.Component("mcp").Debug("serving over stdio", "version", version)
	return server.ServeStdio(New(version))
}

func handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	source, err := convert.ParseSourceFormat(request.GetString("from", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := convert.ParseFormat(request.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := convert.ParseAs(text, source)
	if err != nil {
		return coreError(err), nil
	}
	out, err := convert.Serialize(m, target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func handleEdit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawOps, err := request.RequireString("operations")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	specs := splitOps(rawOps)
	if len(specs) == 0 {
		return mcp.NewToolResultError("operations is empty"), nil
	}
	target, err := convert.ParseFormat(request.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := convert.Parse(text)
	if err != nil {
		return coreError(err), nil
	}

	session := table.NewSession()
	session.Replace(m)
	if err := table.ApplyOps(session, specs); err != nil {
		return coreError(err), nil
	}

	out, err := convert.Serialize(session.Model(), target)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}

func handleStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m, err := convert.Parse(text)
	if err != nil {
		return coreError(err), nil
	}

	report := struct {
		Summary string         `json:"summary"`
		Columns []*table.Stats `json:"columns"`
	}{
		Summary: table.Summary(m),
		Columns: table.AllColumnStats(m),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// coreError renders a classified parse or edit failure as an MCP error
// result carrying the stable kind name.
func coreError(err error) *mcp.CallToolResult {
	if code := clierrors.ErrorCode(err); code != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", code, err))
	}
	return mcp.NewToolResultError(err.Error())
}

func splitOps(raw string) []string {
	var specs []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			specs = append(specs, p)
		}
	}
	return specs
}
