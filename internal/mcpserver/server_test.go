package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/quicktask/internal/models"
	"github.com/starford/quicktask/internal/taskservice"
	"github.com/starford/quicktask/internal/testutil"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()

	vaultDir := testutil.TestVault(t, "")
	reg := testutil.TestRegistry(t, map[string]string{"v1": vaultDir})
	svc := taskservice.New(testutil.Env(t),
		taskservice.WithRegistryPath(reg),
		taskservice.WithHistory(testutil.TestHistory(t)),
		taskservice.WithLogger(testutil.Logger()),
	)
	return New(svc, "test"), vaultDir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no call-tool test helper, so the handlers are invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_vaults":
		result, err = srv.listVaults(ctx, req)
	case "add_task":
		result, err = srv.addTask(ctx, req)
	case "recent_tasks":
		result, err = srv.recentTasks(ctx, req)
	case "get_task_format":
		result, err = srv.getTaskFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestListVaults(t *testing.T) {
	srv, vaultDir := testServer(t)

	r := callTool(t, srv, "list_vaults", map[string]any{})
	if r.IsError {
		t.Fatalf("error result: %s", resultText(r))
	}
	var vaults []models.Vault
	if err := json.Unmarshal([]byte(resultText(r)), &vaults); err != nil {
		t.Fatal(err)
	}
	if len(vaults) != 1 || vaults[0].Path != vaultDir {
		t.Errorf("vaults = %+v", vaults)
	}
}

func TestAddTask_SingleVaultDefault(t *testing.T) {
	srv, vaultDir := testServer(t)

	r := callTool(t, srv, "add_task", map[string]any{
		"content":  "Buy milk",
		"due_date": "2024-01-18",
	})
	if r.IsError {
		t.Fatalf("error result: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "- [ ] Buy milk ⏳ 2024-01-18") {
		t.Errorf("result = %q", resultText(r))
	}

	data, err := os.ReadFile(filepath.Join(vaultDir, "2024-01-17.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# 2024-01-17\n\n## Tasks\n\n- [ ] Buy milk ⏳ 2024-01-18\n" {
		t.Errorf("note = %q", data)
	}
}

func TestAddTask_ByID(t *testing.T) {
	srv, vaultDir := testServer(t)

	r := callTool(t, srv, "add_task", map[string]any{"vault": "v1", "content": "Call Bob"})
	if r.IsError {
		t.Fatalf("error result: %s", resultText(r))
	}
	data, _ := os.ReadFile(filepath.Join(vaultDir, "2024-01-17.md"))
	if !strings.Contains(string(data), "- [ ] Call Bob\n") {
		t.Errorf("note = %q", data)
	}
}

func TestAddTask_Errors(t *testing.T) {
	srv, _ := testServer(t)

	if r := callTool(t, srv, "add_task", map[string]any{}); !r.IsError {
		t.Error("expected error for missing content")
	}
	if r := callTool(t, srv, "add_task", map[string]any{"content": "   "}); !r.IsError {
		t.Error("expected error for blank content")
	}
	r := callTool(t, srv, "add_task", map[string]any{"vault": "nope", "content": "x"})
	if !r.IsError {
		t.Error("expected error for unknown vault")
	}
}

func TestRecentTasks(t *testing.T) {
	srv, _ := testServer(t)
	callTool(t, srv, "add_task", map[string]any{"content": "first"})
	callTool(t, srv, "add_task", map[string]any{"content": "second"})

	r := callTool(t, srv, "recent_tasks", map[string]any{"vault": "v1", "limit": 1})
	if r.IsError {
		t.Fatalf("error result: %s", resultText(r))
	}
	var tasks []models.TaskEntry
	if err := json.Unmarshal([]byte(resultText(r)), &tasks); err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Line != "- [ ] second" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestGetTaskFormat(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_task_format", nil)
	if !strings.Contains(resultText(r), "## Tasks") {
		t.Error("contract does not mention the Tasks heading")
	}

	contents, err := srv.readTaskFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	if tc, ok := contents[0].(mcp.TextResourceContents); !ok || tc.URI != taskFormatURI {
		t.Errorf("resource = %+v", contents[0])
	}
}

func TestAddTask_ParseDate(t *testing.T) {
	srv, vaultDir := testServer(t)

	r := callTool(t, srv, "add_task", map[string]any{"content": "Buy milk tomorrow", "parse_date": true})
	if r.IsError {
		t.Fatalf("error result: %s", resultText(r))
	}
	data, _ := os.ReadFile(filepath.Join(vaultDir, "2024-01-17.md"))
	if !strings.Contains(string(data), "- [ ] Buy milk ⏳ 2024-01-18\n") {
		t.Errorf("note = %q", data)
	}
}
