package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with retrofit tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"retrofit",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("retrofit/check",
			mcp.WithDescription("Report which generated source files a rule set would rewrite (no files are touched)"),
			mcp.WithString("dir", mcp.Description("Directory to scan (defaults to the rule set's target dir)")),
			mcp.WithString("rules", mcp.Description("Path to a rule-set YAML file (defaults to the built-in rule set)")),
		),
		HandleCheck,
	)

	s.AddTool(
		mcp.NewTool("retrofit/fix",
			mcp.WithDescription("Rewrite generated source files in place according to a rule set"),
			mcp.WithString("dir", mcp.Description("Directory to scan (defaults to the rule set's target dir)")),
			mcp.WithString("rules", mcp.Description("Path to a rule-set YAML file (defaults to the built-in rule set)")),
		),
		HandleFix,
	)

	s.AddTool(
		mcp.NewTool("retrofit/schema",
			mcp.WithDescription("Export the retrofit rule-set JSON Schema"),
		),
		HandleSchema,
	)

	s.AddTool(
		mcp.NewTool("retrofit/validate",
			mcp.WithDescription("Validate a retrofit rule-set YAML file"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path to the rule-set YAML file")),
		),
		HandleValidate,
	)

	return s
}
