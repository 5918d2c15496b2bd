package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/noteservice"
	"github.com/starford/arbor/internal/table"
	"github.com/starford/arbor/internal/testutil"
	"github.com/starford/arbor/internal/viewer"
)

func testServer(t *testing.T) (*Server, table.Store) {
	t.Helper()
	store := table.NewCSV(testutil.TestCSV(t, testutil.ExerciseRecords()))
	srv := New(noteservice.NewService(store, viewer.NewCache(), 0))
	return srv, store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// Since mcp-go doesn't expose a direct "call tool" test helper, we test
	// through the tool handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_roots":
		result, err = srv.listRoots(ctx, req)
	case "get_tree":
		result, err = srv.getTree(ctx, req)
	case "get_node":
		result, err = srv.getNode(ctx, req)
	case "tree_stats":
		result, err = srv.treeStats(ctx, req)
	case "reload_records":
		result, err = srv.reloadRecords(ctx, req)
	case "get_record_format":
		result, err = srv.getRecordFormat(ctx, req)
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

func TestListRoots(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_roots", map[string]interface{}{})
	if text := resultText(r); text != "exercise" {
		t.Errorf("roots = %q, want exercise", text)
	}
}

func TestGetTree(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_tree", map[string]interface{}{"root": "cardio"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}

	var out struct {
		Root string       `json:"root"`
		Tree *models.Node `json:"tree"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Root != "cardio" || out.Tree.Size() != 2 {
		t.Errorf("root = %q, size = %d", out.Root, out.Tree.Size())
	}
}

func TestGetTree_AncestorsWithFilters(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_tree", map[string]interface{}{
		"root":      "sprints",
		"direction": "ancestors",
		"filters":   "category=running",
	})
	text := resultText(r)
	for _, want := range []string{`"sprints"`, `"agility"`, `"exercise"`, `"shown": 5`} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %s: %s", want, text)
		}
	}
}

func TestGetTree_NoMatches(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_tree", map[string]interface{}{"filters": "status=archived"})
	if text := resultText(r); text != "no notes match the current filters" {
		t.Errorf("result = %q", text)
	}
}

func TestGetNode(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_node", map[string]interface{}{"name": "agility"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var d viewer.Details
	if err := json.Unmarshal([]byte(resultText(r)), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Descendants != 2 || d.Parent != "exercise" {
		t.Errorf("details = %+v", d)
	}
}

func TestGetNodeMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_node", map[string]interface{}{"name": "nope"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
	r = callTool(t, srv, "get_node", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when name is absent")
	}
}

func TestTreeStats(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "tree_stats", map[string]interface{}{})
	if !strings.Contains(resultText(r), `"total_notes": 6`) {
		t.Errorf("stats = %s", resultText(r))
	}
}

func TestReloadRecords(t *testing.T) {
	srv, store := testServer(t)
	_ = callTool(t, srv, "list_roots", map[string]interface{}{})
	if err := store.Save(context.Background(), testutil.ExerciseRecords()[:2]); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "reload_records", map[string]interface{}{})
	if !strings.Contains(resultText(r), `"changed": true`) || !strings.Contains(resultText(r), `"total": 2`) {
		t.Errorf("reload = %s", resultText(r))
	}
}

func TestMissingRecordsFile(t *testing.T) {
	store := table.NewCSV(filepath.Join(t.TempDir(), "vault_notes.csv"))
	srv := New(noteservice.NewService(store, nil, 0))

	r := callTool(t, srv, "list_roots", map[string]interface{}{})
	if !r.IsError || !strings.Contains(resultText(r), "crawl") {
		t.Errorf("expected crawl hint, got %q", resultText(r))
	}

	r = callTool(t, srv, "get_node", map[string]interface{}{"name": "exercise"})
	if !r.IsError || !strings.Contains(resultText(r), "crawl") {
		t.Errorf("get_node should keep the crawl hint, got %q", resultText(r))
	}
}

func TestRecordFormat(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_record_format", map[string]interface{}{})
	if !strings.Contains(resultText(r), "[[target|shown text]]") {
		t.Error("format should document parent aliases")
	}

	contents, err := srv.readRecordFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != RecordFormatURI {
		t.Errorf("resource = %+v", contents[0])
	}
}
