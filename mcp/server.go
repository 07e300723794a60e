// Package mcp exposes the Valyu operations as Model Context Protocol tools
// served over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hyperengineering/valyu"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with Valyu tools.
type Server struct {
	client    *valyu.Client
	mcpServer *server.MCPServer
}

// ToolResult represents the result of a tool call.
type ToolResult struct {
	Content string
	IsError bool
}

// ToolInfo represents a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

// NewServer creates a new MCP server with Valyu tools registered.
// The client's credential is resolved on every call.
func NewServer(client *valyu.Client) *Server {
	s := &Server{client: client}

	s.mcpServer = server.NewMCPServer(
		"valyu",
		valyu.Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	return s
}

// Run serves MCP over os.Stdin and os.Stdout until the input closes.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// HandleMessage processes a raw JSON-RPC message and returns a response.
// This is primarily for testing the MCP protocol layer.
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcpServer.HandleMessage(ctx, message)
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: "valyu_search", Description: descSearch},
		{Name: "valyu_answer", Description: descAnswer},
		{Name: "valyu_contents", Description: descContents},
		{Name: "valyu_deepresearch_create", Description: descDeepResearchCreate},
		{Name: "valyu_deepresearch_status", Description: descDeepResearchStatus},
	}
}

// CallTool executes a tool by name with the given arguments.
// This is used for testing and direct invocation.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (*ToolResult, error) {
	switch name {
	case "valyu_search":
		return s.handleSearch(ctx, args)
	case "valyu_answer":
		return s.handleAnswer(ctx, args)
	case "valyu_contents":
		return s.handleContents(ctx, args)
	case "valyu_deepresearch_create":
		return s.handleDeepResearchCreate(ctx, args)
	case "valyu_deepresearch_status":
		return s.handleDeepResearchStatus(ctx, args)
	default:
		return &ToolResult{Content: fmt.Sprintf("unknown tool: %s", name), IsError: true}, nil
	}
}

const (
	descSearch             = "Search the web, news or a proprietary source preset (finance, paper, bio, patent, sec, economics)"
	descAnswer             = "Ask a question and get an AI answer grounded in search results, with sources and cost"
	descContents           = "Extract clean content from one or more URLs, optionally summarized or shaped by a JSON schema"
	descDeepResearchCreate = "Start an asynchronous deep research task and return its task id"
	descDeepResearchStatus = "Check the status of a deep research task and fetch its report when completed"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("valyu_search",
		mcp.WithDescription(descSearch+". Returns a JSON envelope with results and cost."),
		mcp.WithString("type",
			mcp.Description("Search preset: web, news, finance, paper, bio, patent, sec, economics"),
			mcp.Required(),
		),
		mcp.WithString("query",
			mcp.Description("The search query"),
			mcp.Required(),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results (default: 10)"),
		),
	), s.wrap(s.handleSearch))

	s.mcpServer.AddTool(mcp.NewTool("valyu_answer",
		mcp.WithDescription(descAnswer+"."),
		mcp.WithString("query",
			mcp.Description("The question to answer"),
			mcp.Required(),
		),
		mcp.WithBoolean("fast_mode",
			mcp.Description("Lower latency, less thorough answer"),
		),
		mcp.WithString("structured_output",
			mcp.Description("JSON schema (as a JSON string) the answer must follow"),
		),
		mcp.WithString("search_type",
			mcp.Description("Search scope: all, web, proprietary, news (default: all)"),
		),
		mcp.WithNumber("data_max_price",
			mcp.Description("Maximum spend on data in dollars (default: 40)"),
		),
		mcp.WithString("system_instructions",
			mcp.Description("Extra instructions for the answering model"),
		),
		mcp.WithArray("included_sources",
			mcp.Description("Restrict search to these sources"),
			mcp.WithStringItems(),
		),
		mcp.WithString("start_date",
			mcp.Description("Earliest publication date (YYYY-MM-DD)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Latest publication date (YYYY-MM-DD)"),
		),
	), s.wrap(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("valyu_contents",
		mcp.WithDescription(descContents+"."),
		mcp.WithArray("urls",
			mcp.Description("URLs to extract"),
			mcp.WithStringItems(),
			mcp.Required(),
		),
		mcp.WithBoolean("summary",
			mcp.Description("Summarize each page"),
		),
		mcp.WithString("summary_instructions",
			mcp.Description("Summarize following these instructions"),
		),
		mcp.WithString("structured",
			mcp.Description("JSON schema (as a JSON string) to extract"),
		),
		mcp.WithString("response_length",
			mcp.Description("short, medium, large, max (default: medium)"),
		),
		mcp.WithString("extract_effort",
			mcp.Description("normal, high, auto (default: auto)"),
		),
		mcp.WithNumber("max_price_dollars",
			mcp.Description("Maximum spend in dollars (default: 0.1)"),
		),
	), s.wrap(s.handleContents))

	s.mcpServer.AddTool(mcp.NewTool("valyu_deepresearch_create",
		mcp.WithDescription(descDeepResearchCreate+". Poll it with valyu_deepresearch_status."),
		mcp.WithString("input",
			mcp.Description("The research question"),
			mcp.Required(),
		),
		mcp.WithString("model",
			mcp.Description("fast, lite or heavy (default: lite)"),
		),
		mcp.WithBoolean("pdf",
			mcp.Description("Also produce a PDF report"),
		),
		mcp.WithArray("urls",
			mcp.Description("URLs the research must consider"),
			mcp.WithStringItems(),
		),
		mcp.WithString("webhook_url",
			mcp.Description("URL notified when the task completes"),
		),
	), s.wrap(s.handleDeepResearchCreate))

	s.mcpServer.AddTool(mcp.NewTool("valyu_deepresearch_status",
		mcp.WithDescription(descDeepResearchStatus+"."),
		mcp.WithString("task_id",
			mcp.Description("The deepresearch_id returned by valyu_deepresearch_create"),
			mcp.Required(),
		),
	), s.wrap(s.handleDeepResearchStatus))
}

type toolHandler func(ctx context.Context, args map[string]any) (*ToolResult, error)

// wrap adapts an internal handler to the mcp-go handler signature.
func (s *Server) wrap(h toolHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := h(ctx, req.GetArguments())
		if err != nil {
			return nil, err
		}
		return toMCPResult(result), nil
	}
}

func toMCPResult(r *ToolResult) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: r.Content,
			},
		},
	}
	if r.IsError {
		result.IsError = true
	}
	return result
}
