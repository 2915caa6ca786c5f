package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

const brokenTest = `let msg = Message {
    id: "1".to_string(),
    metadata: None,
    created_at: 0,
};
`

func tmpCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.rs"), []byte(brokenTest), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// TestHandleCheck_PendingChanges: check flags a dirty corpus as an error
// outcome and does not touch the files.
func TestHandleCheck_PendingChanges(t *testing.T) {
	dir := tmpCorpus(t)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"dir": dir}

	result, err := HandleCheck(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected pending changes to be reported as an error outcome")
	}
	content, _ := os.ReadFile(filepath.Join(dir, "a.rs"))
	if string(content) != brokenTest {
		t.Error("check modified a file")
	}
}

// TestHandleFix_RewritesInPlace: fix patches the corpus; a second check
// comes back clean.
func TestHandleFix_RewritesInPlace(t *testing.T) {
	dir := tmpCorpus(t)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"dir": dir}

	result, err := HandleFix(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("fix failed: %+v", result)
	}
	content, _ := os.ReadFile(filepath.Join(dir, "a.rs"))
	if !strings.Contains(string(content), "function_call: None,") {
		t.Errorf("file not patched:\n%s", content)
	}

	check, err := HandleCheck(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if check.IsError {
		t.Error("corpus still dirty after fix")
	}
}

// TestHandleCheck_MissingDir surfaces the scan error.
func TestHandleCheck_MissingDir(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"dir": filepath.Join(t.TempDir(), "absent")}

	result, err := HandleCheck(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for missing directory")
	}
}

// TestHandleSchema returns the rule-set schema.
func TestHandleSchema(t *testing.T) {
	result, err := HandleSchema(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Error("expected success")
	}
	if len(result.Content) == 0 {
		t.Error("expected schema content")
	}
}

// TestHandleValidate_MissingPath rejects calls without a path argument.
func TestHandleValidate_MissingPath(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for missing path")
	}
}

// TestHandleValidate_BadRuleSet reports validation failures.
func TestHandleValidate_BadRuleSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "apiVersion: retrofit/v0\nmeta:\n  name: x\ntarget:\n  dir: tests\n  suffix: .rs\nrules: []\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": path}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for empty rules list")
	}
}
