package valyu

import "encoding/json"

// Envelope types reported in the "type" field.
const (
	TypeSearch             = "search"
	TypeAnswer             = "answer"
	TypeContents           = "contents"
	TypeDeepResearchCreate = "deepresearch_create"
	TypeDeepResearchStatus = "deepresearch_status"
	TypeSetup              = "setup"
)

var emptyArray = json.RawMessage("[]")

// SearchHit is one normalized search result.
type SearchHit struct {
	Title          string          `json:"title,omitempty"`
	URL            string          `json:"url,omitempty"`
	Content        json.RawMessage `json:"content,omitempty"`
	Source         string          `json:"source,omitempty"`
	RelevanceScore *float64        `json:"relevance_score,omitempty"`
}

// SearchResult is the envelope for the search operation.
type SearchResult struct {
	Success     bool        `json:"success"`
	Type        string      `json:"type"`
	SearchType  string      `json:"searchType"`
	Query       string      `json:"query"`
	ResultCount int         `json:"resultCount"`
	Results     []SearchHit `json:"results"`
	Cost        float64     `json:"cost"`
}

// AnswerResult is the envelope for the answer operation.
type AnswerResult struct {
	Success  bool            `json:"success"`
	Type     string          `json:"type"`
	Query    string          `json:"query"`
	Answer   json.RawMessage `json:"answer,omitempty"`
	DataType string          `json:"data_type,omitempty"`
	Sources  json.RawMessage `json:"sources"`
	Cost     float64         `json:"cost"`
}

// AnswerText returns the answer when the API returned plain text.
func (r *AnswerResult) AnswerText() (string, bool) {
	var s string
	if err := json.Unmarshal(r.Answer, &s); err != nil {
		return "", false
	}
	return s, true
}

// ContentsItem is one normalized extracted page.
type ContentsItem struct {
	Title          string          `json:"title,omitempty"`
	URL            string          `json:"url,omitempty"`
	Content        json.RawMessage `json:"content,omitempty"`
	DataType       string          `json:"data_type,omitempty"`
	SummarySuccess *bool           `json:"summary_success,omitempty"`
	Length         *int            `json:"length,omitempty"`
}

// ContentsResult is the envelope for the contents operation.
type ContentsResult struct {
	Success       bool            `json:"success"`
	Type          string          `json:"type"`
	URLsRequested json.RawMessage `json:"urls_requested,omitempty"`
	URLsProcessed json.RawMessage `json:"urls_processed,omitempty"`
	URLsFailed    json.RawMessage `json:"urls_failed,omitempty"`
	Results       []ContentsItem  `json:"results"`
	TotalCost     float64         `json:"total_cost"`
}

// DeepResearchCreateResult is the envelope for a newly created task.
type DeepResearchCreateResult struct {
	Success        bool            `json:"success"`
	Type           string          `json:"type"`
	DeepResearchID string          `json:"deepresearch_id,omitempty"`
	Status         string          `json:"status,omitempty"`
	Query          string          `json:"query,omitempty"`
	Model          string          `json:"model,omitempty"`
	WebhookSecret  string          `json:"webhook_secret,omitempty"`
	CreatedAt      json.RawMessage `json:"created_at,omitempty"`
}

// DeepResearchStatusResult is the envelope for a task status fetch.
type DeepResearchStatusResult struct {
	Success        bool            `json:"success"`
	Type           string          `json:"type"`
	DeepResearchID string          `json:"deepresearch_id,omitempty"`
	Status         string          `json:"status,omitempty"`
	Query          string          `json:"query,omitempty"`
	Output         json.RawMessage `json:"output,omitempty"`
	PDFURL         string          `json:"pdf_url,omitempty"`
	Sources        json.RawMessage `json:"sources,omitempty"`
	Progress       json.RawMessage `json:"progress,omitempty"`
	Usage          json.RawMessage `json:"usage,omitempty"`
	CompletedAt    json.RawMessage `json:"completed_at,omitempty"`
}

// OutputText returns the report when the API returned it as text.
func (r *DeepResearchStatusResult) OutputText() (string, bool) {
	var s string
	if err := json.Unmarshal(r.Output, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetupResult is the envelope for a saved API key.
type SetupResult struct {
	Success    bool   `json:"success"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	ConfigPath string `json:"config_path"`
}

// SetupRequiredResult tells the caller an API key must be configured first.
type SetupRequiredResult struct {
	Success       bool   `json:"success"`
	SetupRequired bool   `json:"setup_required"`
	Message       string `json:"message"`
}

// NewSetupRequiredResult builds the setup-required envelope.
func NewSetupRequiredResult() *SetupRequiredResult {
	return &SetupRequiredResult{SetupRequired: true, Message: SetupRequiredMessage}
}

// ErrorResult reports a failed operation.
type ErrorResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// decodeLenient unmarshals raw into v.
// Fields whose JSON type does not match keep their zero value.
func decodeLenient(raw json.RawMessage, v any) {
	_ = json.Unmarshal(raw, v)
}

// NormalizeSearch maps a raw /search response into a SearchResult.
func NormalizeSearch(searchType, query string, raw json.RawMessage) *SearchResult {
	var data struct {
		Results               []SearchHit `json:"results"`
		TotalDeductionDollars float64     `json:"total_deduction_dollars"`
	}
	decodeLenient(raw, &data)

	results := data.Results
	if results == nil {
		results = []SearchHit{}
	}
	return &SearchResult{
		Success:     true,
		Type:        TypeSearch,
		SearchType:  searchType,
		Query:       query,
		ResultCount: len(results),
		Results:     results,
		Cost:        data.TotalDeductionDollars,
	}
}

// NormalizeAnswer maps a raw /answer response into an AnswerResult.
func NormalizeAnswer(query string, raw json.RawMessage) *AnswerResult {
	var data struct {
		Contents      json.RawMessage `json:"contents"`
		DataType      string          `json:"data_type"`
		SearchResults json.RawMessage `json:"search_results"`
		Cost          struct {
			TotalDeductionDollars float64 `json:"total_deduction_dollars"`
		} `json:"cost"`
	}
	decodeLenient(raw, &data)

	sources := data.SearchResults
	if isNullish(sources) {
		sources = emptyArray
	}
	return &AnswerResult{
		Success:  true,
		Type:     TypeAnswer,
		Query:    query,
		Answer:   data.Contents,
		DataType: data.DataType,
		Sources:  sources,
		Cost:     data.Cost.TotalDeductionDollars,
	}
}

// NormalizeContents maps a raw /contents response into a ContentsResult.
func NormalizeContents(raw json.RawMessage) *ContentsResult {
	var data struct {
		Success          bool            `json:"success"`
		URLsRequested    json.RawMessage `json:"urls_requested"`
		URLsProcessed    json.RawMessage `json:"urls_processed"`
		URLsFailed       json.RawMessage `json:"urls_failed"`
		Results          []ContentsItem  `json:"results"`
		TotalCostDollars float64         `json:"total_cost_dollars"`
	}
	decodeLenient(raw, &data)

	results := data.Results
	if results == nil {
		results = []ContentsItem{}
	}
	return &ContentsResult{
		Success:       data.Success,
		Type:          TypeContents,
		URLsRequested: data.URLsRequested,
		URLsProcessed: data.URLsProcessed,
		URLsFailed:    data.URLsFailed,
		Results:       results,
		TotalCost:     data.TotalCostDollars,
	}
}

// NormalizeDeepResearchCreate maps a raw task-creation response.
func NormalizeDeepResearchCreate(raw json.RawMessage) *DeepResearchCreateResult {
	var data struct {
		DeepResearchID string          `json:"deepresearch_id"`
		Status         string          `json:"status"`
		Query          string          `json:"query"`
		Mode           string          `json:"mode"`
		WebhookSecret  string          `json:"webhook_secret"`
		CreatedAt      json.RawMessage `json:"created_at"`
	}
	decodeLenient(raw, &data)

	return &DeepResearchCreateResult{
		Success:        true,
		Type:           TypeDeepResearchCreate,
		DeepResearchID: data.DeepResearchID,
		Status:         data.Status,
		Query:          data.Query,
		Model:          data.Mode,
		WebhookSecret:  data.WebhookSecret,
		CreatedAt:      data.CreatedAt,
	}
}

// NormalizeDeepResearchStatus maps a raw task-status response.
func NormalizeDeepResearchStatus(raw json.RawMessage) *DeepResearchStatusResult {
	var data struct {
		DeepResearchID string          `json:"deepresearch_id"`
		Status         string          `json:"status"`
		Query          string          `json:"query"`
		Output         json.RawMessage `json:"output"`
		PDFURL         string          `json:"pdf_url"`
		Sources        json.RawMessage `json:"sources"`
		Progress       json.RawMessage `json:"progress"`
		Usage          json.RawMessage `json:"usage"`
		CompletedAt    json.RawMessage `json:"completed_at"`
	}
	decodeLenient(raw, &data)

	return &DeepResearchStatusResult{
		Success:        true,
		Type:           TypeDeepResearchStatus,
		DeepResearchID: data.DeepResearchID,
		Status:         data.Status,
		Query:          data.Query,
		Output:         data.Output,
		PDFURL:         data.PDFURL,
		Sources:        data.Sources,
		Progress:       data.Progress,
		Usage:          data.Usage,
		CompletedAt:    data.CompletedAt,
	}
}

func isNullish(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
