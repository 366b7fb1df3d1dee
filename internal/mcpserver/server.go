// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes quicktask tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/quicktask/internal/taskservice"
)

const taskFormatURI = "quicktask://task-format"

// Server wraps the MCP server with quicktask tools.
type Server struct {
	mcp *server.MCPServer
	svc *taskservice.Service
}

// New creates a new MCP server with all quicktask tools registered.
func New(svc *taskservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"quicktask",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_vaults",
		mcp.WithDescription("List the Obsidian vaults registered on this machine."),
	), s.listVaults)

	s.mcp.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Append a task to today's daily note of a vault. "+
			"Read the format via get_task_format or the "+taskFormatURI+" resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Single-line task description")),
		mcp.WithString("vault", mcp.Description("Vault id, name or path (optional with a single vault)")),
		mcp.WithString("due_date", mcp.Description("Optional due date, e.g. 2024-01-18")),
		mcp.WithBoolean("parse_date", mcp.Description("Take the due date from a phrase in content, e.g. \"call Bob tomorrow\"")),
	), s.addTask)

	s.mcp.AddTool(mcp.NewTool("recent_tasks",
		mcp.WithDescription("List recently added tasks, newest first. Empty when history is disabled."),
		mcp.WithString("vault", mcp.Description("Vault id, name or path to filter by")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of tasks (default 20)")),
	), s.recentTasks)

	s.mcp.AddTool(mcp.NewTool("get_task_format",
		mcp.WithDescription("Returns how quicktask locates daily notes and formats task lines."),
	), s.getTaskFormat)

	s.mcp.AddResource(
		mcp.NewResource(taskFormatURI, "Task Format",
			mcp.WithResourceDescription("Daily note location rules and task line format."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTaskFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listVaults(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vaults, err := s.svc.ListVaults(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(vaults), nil
}

func (s *Server) addTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	v, err := s.svc.ResolveVault(ctx, req.GetString("vault", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.AddTask(ctx, taskservice.AddTaskRequest{
		VaultPath: v.Path,
		Content:   content,
		DueDate:   req.GetString("due_date", ""),
		ParseDate: req.GetBool("parse_date", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added to %s: %s", res.Path, res.Line)), nil
}

func (s *Server) recentTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vaultPath := ""
	if ref := req.GetString("vault", ""); ref != "" {
		v, err := s.svc.ResolveVault(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		vaultPath = v.Path
	}
	tasks, err := s.svc.RecentTasks(ctx, vaultPath, req.GetInt("limit", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tasks), nil
}

func (s *Server) getTaskFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TaskFormatContract), nil
}

func (s *Server) readTaskFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      taskFormatURI,
			MIMEType: "text/markdown",
			Text:     TaskFormatContract,
		},
	}, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}
