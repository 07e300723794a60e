package valyu

import (
	"encoding/json"
	"fmt"
)

// Request defaults applied when an option is left at its zero value.
const (
	DefaultMaxResults      = 10
	DefaultDataMaxPrice    = 40.0
	DefaultResponseLength  = "medium"
	DefaultExtractEffort   = "auto"
	DefaultMaxPriceDollars = 0.1
	DefaultResearchModel   = "lite"
)

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query           string   `json:"query"`
	MaxNumResults   int      `json:"max_num_results"`
	SearchType      string   `json:"search_type"`
	IncludedSources []string `json:"included_sources,omitempty"`
}

// BuildSearch merges the named preset with query and result count.
// maxResults <= 0 uses DefaultMaxResults.
func BuildSearch(searchType, query string, maxResults int) (*SearchRequest, error) {
	preset, ok := LookupPreset(searchType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSearchType, searchType)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &SearchRequest{
		Query:           query,
		MaxNumResults:   maxResults,
		SearchType:      preset.SearchType,
		IncludedSources: preset.IncludedSources,
	}, nil
}

// AnswerOptions holds the optional parameters of an answer request.
// Zero values select defaults; nil slots are left out of the payload.
type AnswerOptions struct {
	SearchType         string
	DataMaxPrice       float64
	FastMode           bool
	SystemInstructions *string
	StructuredOutput   json.RawMessage
	IncludedSources    []string
	StartDate          *string
	EndDate            *string
}

// AnswerRequest is the body of POST /answer.
type AnswerRequest struct {
	Query              string          `json:"query"`
	SearchType         string          `json:"search_type"`
	DataMaxPrice       float64         `json:"data_max_price"`
	FastMode           bool            `json:"fast_mode"`
	SystemInstructions *string         `json:"system_instructions,omitempty"`
	StructuredOutput   json.RawMessage `json:"structured_output,omitempty"`
	IncludedSources    []string        `json:"included_sources,omitempty"`
	StartDate          *string         `json:"start_date,omitempty"`
	EndDate            *string         `json:"end_date,omitempty"`
}

// BuildAnswer shapes an answer request.
func BuildAnswer(query string, opts AnswerOptions) *AnswerRequest {
	req := &AnswerRequest{
		Query:              query,
		SearchType:         opts.SearchType,
		DataMaxPrice:       opts.DataMaxPrice,
		FastMode:           opts.FastMode,
		SystemInstructions: opts.SystemInstructions,
		StructuredOutput:   opts.StructuredOutput,
		IncludedSources:    opts.IncludedSources,
		StartDate:          opts.StartDate,
		EndDate:            opts.EndDate,
	}
	if req.SearchType == "" {
		req.SearchType = SearchTypeAll
	}
	if req.DataMaxPrice == 0 {
		req.DataMaxPrice = DefaultDataMaxPrice
	}
	return req
}

// Summary selects what the contents endpoint summarizes.
// The zero value disables summarization.
type Summary struct {
	enabled      bool
	instructions string
	schema       json.RawMessage
}

// SummaryDefault requests the API's default summary.
func SummaryDefault() Summary { return Summary{enabled: true} }

// SummaryInstructions requests a summary guided by free-text instructions.
func SummaryInstructions(s string) Summary { return Summary{enabled: true, instructions: s} }

// SummarySchema requests a summary shaped by a JSON schema.
func SummarySchema(schema json.RawMessage) Summary { return Summary{enabled: true, schema: schema} }

// MarshalJSON encodes the summary as false, true, a string, or a schema object.
func (s Summary) MarshalJSON() ([]byte, error) {
	switch {
	case !s.enabled:
		return []byte("false"), nil
	case len(s.schema) > 0:
		return s.schema, nil
	case s.instructions != "":
		return json.Marshal(s.instructions)
	default:
		return []byte("true"), nil
	}
}

// ContentsOptions holds the optional parameters of a contents request.
type ContentsOptions struct {
	ResponseLength  string
	ExtractEffort   string
	Summary         Summary
	MaxPriceDollars float64
}

// ContentsRequest is the body of POST /contents.
type ContentsRequest struct {
	URLs            []string `json:"urls"`
	ResponseLength  string   `json:"response_length"`
	ExtractEffort   string   `json:"extract_effort"`
	Summary         Summary  `json:"summary"`
	MaxPriceDollars float64  `json:"max_price_dollars"`
}

// BuildContents shapes a contents request for one or more URLs.
func BuildContents(urls []string, opts ContentsOptions) *ContentsRequest {
	req := &ContentsRequest{
		URLs:            append([]string(nil), urls...),
		ResponseLength:  opts.ResponseLength,
		ExtractEffort:   opts.ExtractEffort,
		Summary:         opts.Summary,
		MaxPriceDollars: opts.MaxPriceDollars,
	}
	if req.URLs == nil {
		req.URLs = []string{}
	}
	if req.ResponseLength == "" {
		req.ResponseLength = DefaultResponseLength
	}
	if req.ExtractEffort == "" {
		req.ExtractEffort = DefaultExtractEffort
	}
	if req.MaxPriceDollars == 0 {
		req.MaxPriceDollars = DefaultMaxPriceDollars
	}
	return req
}

// BuildContentsURL shapes a contents request for a single URL.
func BuildContentsURL(url string, opts ContentsOptions) *ContentsRequest {
	return BuildContents([]string{url}, opts)
}

// DeepResearchOptions holds the optional parameters of a deep-research task.
type DeepResearchOptions struct {
	Model         string
	OutputFormats []string
	Search        json.RawMessage
	URLs          []string
	Files         json.RawMessage
	WebhookURL    *string
}

// DeepResearchRequest is the body of POST /deepresearch/tasks.
type DeepResearchRequest struct {
	Input         string          `json:"input"`
	Model         string          `json:"model"`
	OutputFormats []string        `json:"output_formats"`
	Search        json.RawMessage `json:"search,omitempty"`
	URLs          []string        `json:"urls,omitempty"`
	Files         json.RawMessage `json:"files,omitempty"`
	WebhookURL    *string         `json:"webhook_url,omitempty"`
}

// BuildDeepResearch shapes a deep-research task request.
func BuildDeepResearch(input string, opts DeepResearchOptions) *DeepResearchRequest {
	req := &DeepResearchRequest{
		Input:         input,
		Model:         opts.Model,
		OutputFormats: opts.OutputFormats,
		Search:        opts.Search,
		URLs:          opts.URLs,
		Files:         opts.Files,
		WebhookURL:    opts.WebhookURL,
	}
	if req.Model == "" {
		req.Model = DefaultResearchModel
	}
	if req.OutputFormats == nil {
		req.OutputFormats = []string{"markdown"}
	}
	return req
}
