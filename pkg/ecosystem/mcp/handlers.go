package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ormasoftchile/retrofit/pkg/patch"
	"github.com/ormasoftchile/retrofit/pkg/rewrite"
	"github.com/ormasoftchile/retrofit/pkg/rules"
)

// HandleCheck implements the retrofit/check MCP tool: a dry run reporting
// which files the rule set would rewrite.
func HandleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runner, errRes := runnerFromArgs(req, true)
	if errRes != nil {
		return errRes, nil
	}
	sum, err := runner.Run()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return summaryResult(sum, sum.Changed() > 0), nil
}

// HandleFix implements the retrofit/fix MCP tool: rewrites changed files
// in place.
func HandleFix(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runner, errRes := runnerFromArgs(req, false)
	if errRes != nil {
		return errRes, nil
	}
	sum, err := runner.Run()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return summaryResult(sum, false), nil
}

// HandleSchema implements the retrofit/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := rules.GenerateJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// HandleValidate implements the retrofit/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}
	rs, errs := rules.ValidateFile(path)
	if hasErrors(errs) {
		return errorResult(formatErrors(errs)), nil
	}
	return textResult(fmt.Sprintf("✓ %s is valid (%d rules)", rs.Meta.Name, len(rs.Rules))), nil
}

// runnerFromArgs builds a patch.Runner from the shared dir/rules arguments.
func runnerFromArgs(req mcp.CallToolRequest, dryRun bool) (*patch.Runner, *mcp.CallToolResult) {
	args := req.GetArguments()

	rs := rules.Default()
	if path, _ := args["rules"].(string); path != "" {
		loaded, errs := rules.ValidateFile(path)
		if hasErrors(errs) {
			return nil, errorResult(formatErrors(errs))
		}
		rs = loaded
	}

	dir := rs.Target.Dir
	if d, _ := args["dir"].(string); d != "" {
		dir = d
	}

	pipeline, err := rewrite.NewPipeline(rs)
	if err != nil {
		return nil, errorResult(err.Error())
	}
	return &patch.Runner{
		Dir:      dir,
		Suffix:   rs.Target.Suffix,
		Pipeline: pipeline,
		DryRun:   dryRun,
	}, nil
}

// summaryResult serializes a run summary; pendingIsErr marks pending
// changes as an error outcome so agents notice check failures.
func summaryResult(sum *patch.Summary, pendingIsErr bool) *mcp.CallToolResult {
	type fileOut struct {
		Name    string   `json:"name"`
		Changed bool     `json:"changed"`
		Written bool     `json:"written"`
		Rules   []string `json:"rules,omitempty"`
	}
	response := map[string]any{
		"dir":     sum.Dir,
		"scanned": sum.Scanned,
		"changed": sum.Changed(),
	}
	var files []fileOut
	for _, r := range sum.Results {
		files = append(files, fileOut{Name: r.Name, Changed: r.Changed, Written: r.Written, Rules: r.Passes})
	}
	response["files"] = files

	data, _ := json.MarshalIndent(response, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
		IsError: pendingIsErr,
	}
}

func hasErrors(errs []*rules.ValidationError) bool {
	for _, e := range errs {
		if e.Severity == "error" {
			return true
		}
	}
	return false
}

func formatErrors(errs []*rules.ValidationError) string {
	var msgs []string
	for _, e := range errs {
		if e.Severity == "error" {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", e.Phase, e.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
