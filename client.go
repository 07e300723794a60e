package valyu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hyperengineering/valyu/internal/credential"
)

// Client is the main interface for calling the Valyu API.
type Client struct {
	config      Config
	credentials *credential.Store
	transport   *Transport
	debug       *DebugLogger
}

// New creates a new Valyu client.
// The API key is resolved lazily; a client without credentials is valid
// and reports ErrSetupRequired on the first call.
func New(cfg Config) (*Client, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug, err := NewDebugLogger(cfg.Debug, cfg.DebugLogPath)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	c := &Client{
		config:      cfg,
		credentials: credential.New(cfg.ConfigPath),
		debug:       debug,
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	c.transport = NewTransport(cfg.BaseURL, cfg.UserAgent, c.APIKey).
		WithHTTPClient(httpClient).
		WithDebug(debug)

	return c, nil
}

// Close releases the debug log file, if any.
func (c *Client) Close() error {
	return c.debug.Close()
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// APIKey returns the key used for the next call, or "" if none is configured.
// Priority: Config.APIKey > VALYU_API_KEY > config file.
func (c *Client) APIKey() string {
	if c.config.APIKey != "" {
		return c.config.APIKey
	}
	return c.credentials.Resolve()
}

// SaveAPIKey persists key to the config file, preserving other fields.
func (c *Client) SaveAPIKey(key string) (*SetupResult, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("save api key: %w", ErrMissingArgument)
	}
	if err := c.credentials.Save(key); err != nil {
		c.debug.LogError("-", "setup", err)
		return nil, err
	}
	path := c.credentials.ConfigPath()
	return &SetupResult{
		Success:    true,
		Type:       TypeSetup,
		Message:    "API key saved successfully to " + path,
		ConfigPath: path,
	}, nil
}

// Search runs a preset search.
// maxResults <= 0 uses DefaultMaxResults.
func (c *Client) Search(ctx context.Context, searchType, query string, maxResults int) (*SearchResult, error) {
	req, err := BuildSearch(searchType, query, maxResults)
	if err != nil {
		return nil, err
	}
	raw, err := c.transport.Call(ctx, http.MethodPost, "/search", req)
	if err != nil {
		return nil, err
	}
	return NormalizeSearch(searchType, query, raw), nil
}

// Answer asks a question and returns a sourced answer.
func (c *Client) Answer(ctx context.Context, query string, opts AnswerOptions) (*AnswerResult, error) {
	raw, err := c.transport.Call(ctx, http.MethodPost, "/answer", BuildAnswer(query, opts))
	if err != nil {
		return nil, err
	}
	return NormalizeAnswer(query, raw), nil
}

// Contents extracts the content of one or more URLs.
func (c *Client) Contents(ctx context.Context, urls []string, opts ContentsOptions) (*ContentsResult, error) {
	raw, err := c.transport.Call(ctx, http.MethodPost, "/contents", BuildContents(urls, opts))
	if err != nil {
		return nil, err
	}
	return NormalizeContents(raw), nil
}

// DeepResearchCreate starts an asynchronous deep-research task.
func (c *Client) DeepResearchCreate(ctx context.Context, input string, opts DeepResearchOptions) (*DeepResearchCreateResult, error) {
	raw, err := c.transport.Call(ctx, http.MethodPost, "/deepresearch/tasks", BuildDeepResearch(input, opts))
	if err != nil {
		return nil, err
	}
	return NormalizeDeepResearchCreate(raw), nil
}

// DeepResearchStatus fetches the state of a deep-research task.
func (c *Client) DeepResearchStatus(ctx context.Context, taskID string) (*DeepResearchStatusResult, error) {
	if taskID == "" {
		return nil, fmt.Errorf("deepresearch status: %w", ErrMissingArgument)
	}
	path := "/deepresearch/tasks/" + url.PathEscape(taskID) + "/status"
	raw, err := c.transport.Call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeDeepResearchStatus(raw), nil
}
