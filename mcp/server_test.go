package mcp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperengineering/valyu"
	valyumcp "github.com/hyperengineering/valyu/mcp"
)

// newServer returns an MCP server backed by handler.
// An empty apiKey leaves the client without credentials.
func newServer(t *testing.T, apiKey string, handler http.HandlerFunc) *valyumcp.Server {
	t.Helper()
	t.Setenv("VALYU_API_KEY", "")

	baseURL := "http://127.0.0.1:1"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	client, err := valyu.New(valyu.Config{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		ConfigPath: filepath.Join(t.TempDir(), "config.json"),
	})
	if err != nil {
		t.Fatalf("valyu.New() returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return valyumcp.NewServer(client)
}

func decodeContent(t *testing.T, result *valyumcp.ToolResult) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(result.Content), &m); err != nil {
		t.Fatalf("tool content is not JSON: %v\n%s", err, result.Content)
	}
	return m
}

// =============================================================================
// Server Initialization Tests
// =============================================================================

func TestServer_ToolsList(t *testing.T) {
	server := newServer(t, "k", nil)
	tools := server.ListTools()

	expected := []string{
		"valyu_search",
		"valyu_answer",
		"valyu_contents",
		"valyu_deepresearch_create",
		"valyu_deepresearch_status",
	}
	if len(tools) != len(expected) {
		t.Fatalf("ListTools() returned %d tools, want %d", len(tools), len(expected))
	}
	for i, name := range expected {
		if tools[i].Name != name {
			t.Errorf("tools[%d] = %q, want %q", i, tools[i].Name, name)
		}
		if tools[i].Description == "" {
			t.Errorf("tool %q has no description", name)
		}
	}
}

// =============================================================================
// Tool Execution Tests
// =============================================================================

func TestTool_SetupRequired(t *testing.T) {
	server := newServer(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request without credentials")
	})

	result, err := server.CallTool(context.Background(), "valyu_search", map[string]any{
		"type":  "web",
		"query": "AI news",
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if result.IsError {
		t.Error("setup-required should not be reported as a tool error")
	}
	m := decodeContent(t, result)
	if m["setup_required"] != true || m["success"] != false {
		t.Errorf("content = %v", m)
	}
}

func TestTool_Search(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["max_num_results"] != 3.0 || body["search_type"] != "proprietary" {
			t.Errorf("body = %v", body)
		}
		_, _ = w.Write([]byte(`{"results":[{"title":"Paper"}],"total_deduction_dollars":0.02}`))
	})

	result, err := server.CallTool(context.Background(), "valyu_search", map[string]any{
		"type":        "paper",
		"query":       "transformers",
		"max_results": 3.0,
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", result.Content)
	}
	m := decodeContent(t, result)
	if m["type"] != "search" || m["resultCount"] != 1.0 || m["searchType"] != "paper" {
		t.Errorf("content = %v", m)
	}
}

func TestTool_Search_InvalidType(t *testing.T) {
	server := newServer(t, "k", nil)

	result, err := server.CallTool(context.Background(), "valyu_search", map[string]any{
		"type":  "gossip",
		"query": "q",
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for invalid search type")
	}
	if !strings.Contains(result.Content, "invalid search type: gossip") {
		t.Errorf("content = %s", result.Content)
	}
}

func TestTool_Answer_Options(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["fast_mode"] != true || body["system_instructions"] != "be brief" {
			t.Errorf("body = %v", body)
		}
		if schema, ok := body["structured_output"].(map[string]any); !ok || schema["type"] != "object" {
			t.Errorf("structured_output = %v", body["structured_output"])
		}
		if sources, _ := body["included_sources"].([]any); len(sources) != 2 {
			t.Errorf("included_sources = %v", body["included_sources"])
		}
		_, _ = w.Write([]byte(`{"contents":{"answer":1},"data_type":"structured"}`))
	})

	result, err := server.CallTool(context.Background(), "valyu_answer", map[string]any{
		"query":               "q",
		"fast_mode":           true,
		"system_instructions": "be brief",
		"structured_output":   `{"type":"object"}`,
		"included_sources":    []any{"valyu/valyu-arxiv", "valyu/valyu-pubmed"},
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	m := decodeContent(t, result)
	if m["data_type"] != "structured" {
		t.Errorf("content = %v", m)
	}
}

func TestTool_Answer_MalformedSchema(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for malformed schema")
	})

	result, err := server.CallTool(context.Background(), "valyu_answer", map[string]any{
		"query":             "q",
		"structured_output": `{not json`,
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if !result.IsError || !strings.Contains(result.Content, "parse structured_output") {
		t.Errorf("result = %+v", result)
	}
}

func TestTool_Contents_SummaryPrecedence(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["summary"] != "two paragraphs" {
			t.Errorf("summary = %v, want instructions", body["summary"])
		}
		_, _ = w.Write([]byte(`{"success":true,"results":[]}`))
	})

	result, err := server.CallTool(context.Background(), "valyu_contents", map[string]any{
		"urls":                 []any{"https://example.com"},
		"summary":              true,
		"summary_instructions": "two paragraphs",
	})
	if err != nil {
		t.Fatalf("CallTool() error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", result.Content)
	}
}

func TestTool_DeepResearch(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deepresearch/tasks":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if formats, _ := body["output_formats"].([]any); len(formats) != 2 {
				t.Errorf("output_formats = %v", body["output_formats"])
			}
			_, _ = w.Write([]byte(`{"deepresearch_id":"t1","status":"queued","mode":"lite"}`))
		case "/deepresearch/tasks/t1/status":
			_, _ = w.Write([]byte(`{"deepresearch_id":"t1","status":"running"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	created, err := server.CallTool(ctx, "valyu_deepresearch_create", map[string]any{"input": "AI", "pdf": true})
	if err != nil {
		t.Fatal(err)
	}
	if m := decodeContent(t, created); m["deepresearch_id"] != "t1" || m["model"] != "lite" {
		t.Errorf("create content = %v", m)
	}

	status, err := server.CallTool(ctx, "valyu_deepresearch_status", map[string]any{"task_id": "t1"})
	if err != nil {
		t.Fatal(err)
	}
	if m := decodeContent(t, status); m["status"] != "running" {
		t.Errorf("status content = %v", m)
	}
}

func TestTool_APIError(t *testing.T) {
	server := newServer(t, "k", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`insufficient credits`))
	})

	result, err := server.CallTool(context.Background(), "valyu_deepresearch_status", map[string]any{"task_id": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Fatal("expected tool error")
	}
	if m := decodeContent(t, result); m["error"] != "API error: 402 - insufficient credits" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestTool_MissingArguments(t *testing.T) {
	server := newServer(t, "k", nil)
	tools := []string{"valyu_search", "valyu_answer", "valyu_contents", "valyu_deepresearch_create", "valyu_deepresearch_status"}

	for _, name := range tools {
		t.Run(name, func(t *testing.T) {
			result, err := server.CallTool(context.Background(), name, map[string]any{})
			if err != nil {
				t.Fatal(err)
			}
			if !result.IsError || !strings.Contains(result.Content, "required") {
				t.Errorf("result = %+v", result)
			}
		})
	}
}

func TestTool_Unknown(t *testing.T) {
	server := newServer(t, "k", nil)

	result, err := server.CallTool(context.Background(), "valyu_nope", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError || result.Content != "unknown tool: valyu_nope" {
		t.Errorf("result = %+v", result)
	}
}

// =============================================================================
// Protocol-Level Tests
// =============================================================================

func TestProtocol_Initialize(t *testing.T) {
	server := newServer(t, "k", nil)

	initRequest := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test-client","version":"1.0.0"}}}`
	response := server.HandleMessage(context.Background(), []byte(initRequest))
	if response == nil {
		t.Fatal("HandleMessage() returned nil response for initialize request")
	}

	respBytes, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	var respMap map[string]any
	if err := json.Unmarshal(respBytes, &respMap); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	result, ok := respMap["result"].(map[string]any)
	if !ok {
		t.Fatalf("Initialize response missing result: %s", respBytes)
	}
	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok {
		t.Fatal("Initialize result missing serverInfo")
	}
	if serverInfo["name"] != "valyu" {
		t.Errorf("serverInfo.name = %v, want valyu", serverInfo["name"])
	}
}

func TestProtocol_ToolsCall_SetupRequired(t *testing.T) {
	server := newServer(t, "", nil)

	call := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"valyu_answer","arguments":{"query":"q"}}}`
	response := server.HandleMessage(context.Background(), []byte(call))

	respBytes, err := json.Marshal(response)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(respBytes), `setup_required`) {
		t.Errorf("tools/call response missing setup envelope: %s", respBytes)
	}
}
