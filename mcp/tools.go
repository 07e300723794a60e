package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hyperengineering/valyu"
)

func (s *Server) handleSearch(ctx context.Context, args map[string]any) (*ToolResult, error) {
	searchType, _ := args["type"].(string)
	query, _ := args["query"].(string)
	if searchType == "" || query == "" {
		return &ToolResult{Content: "type and query are required", IsError: true}, nil
	}

	maxResults := valyu.DefaultMaxResults
	if n, ok := args["max_results"].(float64); ok {
		maxResults = int(n)
	}

	result, err := s.client.Search(ctx, searchType, query, maxResults)
	return envelope(result, err)
}

func (s *Server) handleAnswer(ctx context.Context, args map[string]any) (*ToolResult, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return &ToolResult{Content: "query is required", IsError: true}, nil
	}

	opts := valyu.AnswerOptions{
		IncludedSources: toStringSlice(args["included_sources"]),
	}
	opts.FastMode, _ = args["fast_mode"].(bool)
	opts.SearchType, _ = args["search_type"].(string)
	opts.DataMaxPrice, _ = args["data_max_price"].(float64)
	opts.SystemInstructions = optionalString(args, "system_instructions")
	opts.StartDate = optionalString(args, "start_date")
	opts.EndDate = optionalString(args, "end_date")

	if raw, ok := args["structured_output"].(string); ok && raw != "" {
		schema, err := parseSchema("structured_output", raw)
		if err != nil {
			return errorResult(err), nil
		}
		opts.StructuredOutput = schema
	}

	result, err := s.client.Answer(ctx, query, opts)
	return envelope(result, err)
}

func (s *Server) handleContents(ctx context.Context, args map[string]any) (*ToolResult, error) {
	urls := toStringSlice(args["urls"])
	if len(urls) == 0 {
		return &ToolResult{Content: "urls is required", IsError: true}, nil
	}

	var opts valyu.ContentsOptions
	opts.ResponseLength, _ = args["response_length"].(string)
	opts.ExtractEffort, _ = args["extract_effort"].(string)
	opts.MaxPriceDollars, _ = args["max_price_dollars"].(float64)

	// Most specific summary form wins: schema, then instructions, then flag.
	if on, _ := args["summary"].(bool); on {
		opts.Summary = valyu.SummaryDefault()
	}
	if instructions, _ := args["summary_instructions"].(string); instructions != "" {
		opts.Summary = valyu.SummaryInstructions(instructions)
	}
	if raw, ok := args["structured"].(string); ok && raw != "" {
		schema, err := parseSchema("structured", raw)
		if err != nil {
			return errorResult(err), nil
		}
		opts.Summary = valyu.SummarySchema(schema)
	}

	result, err := s.client.Contents(ctx, urls, opts)
	return envelope(result, err)
}

func (s *Server) handleDeepResearchCreate(ctx context.Context, args map[string]any) (*ToolResult, error) {
	input, _ := args["input"].(string)
	if input == "" {
		return &ToolResult{Content: "input is required", IsError: true}, nil
	}

	opts := valyu.DeepResearchOptions{
		URLs:       toStringSlice(args["urls"]),
		WebhookURL: optionalString(args, "webhook_url"),
	}
	opts.Model, _ = args["model"].(string)
	if pdf, _ := args["pdf"].(bool); pdf {
		opts.OutputFormats = []string{"markdown", "pdf"}
	}

	result, err := s.client.DeepResearchCreate(ctx, input, opts)
	return envelope(result, err)
}

func (s *Server) handleDeepResearchStatus(ctx context.Context, args map[string]any) (*ToolResult, error) {
	taskID, _ := args["task_id"].(string)
	if taskID == "" {
		return &ToolResult{Content: "task_id is required", IsError: true}, nil
	}

	result, err := s.client.DeepResearchStatus(ctx, taskID)
	return envelope(result, err)
}

// envelope renders an operation outcome as tool output.
// A missing API key is guidance for the agent, not a tool failure.
func envelope(result any, err error) (*ToolResult, error) {
	if errors.Is(err, valyu.ErrSetupRequired) {
		return jsonResult(valyu.NewSetupRequiredResult(), false), nil
	}
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result, false), nil
}

func errorResult(err error) *ToolResult {
	return jsonResult(valyu.ErrorResult{Success: false, Error: err.Error()}, true)
}

func jsonResult(v any, isError bool) *ToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &ToolResult{Content: fmt.Sprintf("encode result: %v", err), IsError: true}
	}
	return &ToolResult{Content: string(data), IsError: isError}
}

// parseSchema checks that raw is JSON and returns it unchanged.
func parseSchema(name, raw string) (json.RawMessage, error) {
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("parse %s: invalid JSON", name)
	}
	return json.RawMessage(raw), nil
}

// optionalString returns a pointer to a non-empty string argument.
func optionalString(args map[string]any, key string) *string {
	if v, ok := args[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// toStringSlice converts various array types to []string.
// Handles []any, []string, and nil.
func toStringSlice(v any) []string {
	switch arr := v.(type) {
	case []string:
		return arr
	case []any:
		result := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}
