package valyu

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Transport issues authenticated calls against the Valyu API.
type Transport struct {
	baseURL    string
	userAgent  string
	apiKey     func() string
	httpClient *http.Client
	debug      *DebugLogger
}

// NewTransport creates a transport rooted at baseURL.
// apiKey is consulted on every call; an empty result means no credential.
func NewTransport(baseURL, userAgent string, apiKey func() string) *Transport {
	return &Transport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// WithHTTPClient sets a custom http.Client (for testing or custom timeouts).
func (t *Transport) WithHTTPClient(client *http.Client) *Transport {
	t.httpClient = client
	return t
}

// WithDebug attaches a debug logger.
func (t *Transport) WithDebug(l *DebugLogger) *Transport {
	t.debug = l
	return t
}

// Call sends one request and returns the raw JSON body of a 2xx response.
// payload is JSON-encoded when non-nil.
func (t *Transport) Call(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	key := ""
	if t.apiKey != nil {
		key = t.apiKey()
	}
	if key == "" {
		return nil, ErrSetupRequired
	}
	t.debug.redact(key)

	id := ulid.Make().String()
	url := t.baseURL + path
	op := method + " " + path

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, &RequestError{Operation: op, Err: fmt.Errorf("encode payload: %w", err)}
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, &RequestError{Operation: op, Err: err}
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t.debug.LogRequest(id, method, url, body)
	start := time.Now()

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.debug.LogError(id, op, err)
		return nil, &RequestError{Operation: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	t.debug.LogResponse(id, resp.StatusCode, resp.Status, time.Since(start), respBody)
	if err != nil {
		t.debug.LogError(id, op, err)
		return nil, &RequestError{Operation: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		t.debug.LogError(id, op, apiErr)
		return nil, apiErr
	}

	if !json.Valid(respBody) {
		err := errors.New("response is not valid JSON")
		t.debug.LogError(id, op, err)
		return nil, &RequestError{Operation: op, Err: err}
	}
	return json.RawMessage(respBody), nil
}
