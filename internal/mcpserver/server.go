// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes arbor's tree queries for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/arbor/internal/apperr"
	"github.com/starford/arbor/internal/filter"
	"github.com/starford/arbor/internal/noteservice"
	"github.com/starford/arbor/internal/viewer"
)

// RecordFormatURI identifies the record format resource.
const RecordFormatURI = "arbor://record-format"

// Server wraps the MCP server with arbor tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all arbor tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"arbor",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_roots",
		mcp.WithDescription("List the notes that have no parent inside the vault, sorted by name."),
	), s.listRoots)

	s.mcp.AddTool(mcp.NewTool("get_tree",
		mcp.WithDescription("Build the parent tree of the vault as nested {name, children} JSON. "+
			"With direction=ancestors the tree starts at root and walks up its parent chain."),
		mcp.WithString("root", mcp.Description("Note name to start from (empty for the first root)")),
		mcp.WithString("direction", mcp.Description("descendants (default) or ancestors")),
		mcp.WithString("filters", mcp.Description("Column filters as col=value;col=value. "+
			"Matching notes keep their ancestors.")),
	), s.getTree)

	s.mcp.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Return the frontmatter fields and tree metrics of one note."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Note name (file name without .md)")),
	), s.getNode)

	s.mcp.AddTool(mcp.NewTool("tree_stats",
		mcp.WithDescription("Count notes, roots, leaves and orphans."),
	), s.treeStats)

	s.mcp.AddTool(mcp.NewTool("reload_records",
		mcp.WithDescription("Re-read the records file after the vault was crawled again."),
	), s.reloadRecords)

	s.mcp.AddTool(mcp.NewTool("get_record_format",
		mcp.WithDescription("Returns how notes declare parents and which frontmatter becomes columns. "+
			"Call this before suggesting edits to note frontmatter."),
	), s.getRecordFormat)

	// Resource: record format description.
	s.mcp.AddResource(
		mcp.NewResource(RecordFormatURI, "Record Format",
			mcp.WithResourceDescription("How vault notes are turned into tree records."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func toolError(err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(err.Error() + " (run the crawl command first if the records file is missing)")
	}
	return mcp.NewToolResultError(err.Error())
}

// optionalString returns the string argument key, or "" when it is absent.
func optionalString(req mcp.CallToolRequest, key string) string {
	if v, err := req.RequireString(key); err == nil {
		return v
	}
	return ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRoots(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roots, err := s.svc.Roots(ctx)
	if err != nil {
		return toolError(err), nil
	}
	if len(roots) == 0 {
		return mcp.NewToolResultText("no roots found"), nil
	}
	return mcp.NewToolResultText(strings.Join(roots, "\n")), nil
}

func (s *Server) getTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.svc.View(ctx, noteservice.ViewQuery{
		Root:      optionalString(req, "root"),
		Direction: viewer.ParseDirection(optionalString(req, "direction")),
		Filters:   filter.Parse(optionalString(req, "filters")),
	})
	if err != nil {
		return toolError(err), nil
	}
	if v.Empty {
		return mcp.NewToolResultText("no notes match the current filters"), nil
	}
	return jsonResult(map[string]any{
		"root":      v.Root,
		"direction": v.Direction,
		"shown":     v.Shown,
		"total":     v.Total,
		"tree":      v.Tree,
	})
}

func (s *Server) getNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.svc.Node(ctx, name)
	if err != nil {
		if errors.Is(err, apperr.ErrUnknownRecord) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", name)), nil
		}
		return toolError(err), nil
	}
	return jsonResult(d)
}

func (s *Server) treeStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.svc.Stats(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(stats)
}

func (s *Server) reloadRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.svc.Reload(ctx)
	if err != nil {
		return toolError(err), nil
	}
	return jsonResult(res)
}

func (s *Server) getRecordFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordFormat), nil
}

func (s *Server) readRecordFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      RecordFormatURI,
			MIMEType: "text/markdown",
			Text:     RecordFormat,
		},
	}, nil
}
