package valyu

import (
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hyperengineering/valyu/internal/credential"
)

// DefaultBaseURL is the Valyu API root.
const DefaultBaseURL = "https://api.valyu.ai/v1"

// Version is the client version reported in the User-Agent header.
var Version = "dev"

// Config configures the Valyu client.
type Config struct {
	// APIKey authenticates with Valyu.
	// If empty, resolved per call from VALYU_API_KEY, then the config file.
	APIKey string

	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// ConfigPath is the JSON file holding the saved API key.
	// Defaults to ~/.valyu/config.json.
	ConfigPath string

	// Timeout bounds each HTTP call. Zero means no limit.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient overrides the HTTP client (for testing or custom transports).
	// When set, Timeout is ignored.
	HTTPClient *http.Client

	// Debug enables verbose logging of all API communication.
	Debug bool

	// DebugLogPath is the path to write debug logs.
	// Defaults to stderr if empty.
	DebugLogPath string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		ConfigPath: credential.DefaultPath(),
		UserAgent:  "valyu-cli/" + Version,
	}
}

// ConfigFromEnv reads configuration from environment variables.
//
//	VALYU_BASE_URL   → BaseURL
//	VALYU_CONFIG     → ConfigPath
//	VALYU_TIMEOUT    → Timeout (Go duration, e.g. "90s")
//	VALYU_DEBUG      → Debug (any non-empty value enables)
//	VALYU_DEBUG_LOG  → DebugLogPath
//
// VALYU_API_KEY is not read here; it is resolved per call so that it keeps
// precedence over the config file.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL:      os.Getenv("VALYU_BASE_URL"),
		ConfigPath:   os.Getenv("VALYU_CONFIG"),
		Debug:        os.Getenv("VALYU_DEBUG") != "",
		DebugLogPath: os.Getenv("VALYU_DEBUG_LOG"),
	}
	if v := os.Getenv("VALYU_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, &ValidationError{Field: "Timeout", Message: "invalid duration " + v}
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// WithDefaults fills in default values for unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.ConfigPath == "" {
		c.ConfigPath = defaults.ConfigPath
	}
	if c.UserAgent == "" {
		c.UserAgent = defaults.UserAgent
	}
	return c
}

// Validate checks the configuration for errors.
// Returns *ValidationError for invalid fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return &ValidationError{Field: "BaseURL", Message: "required"}
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "BaseURL", Message: "must be an absolute http(s) URL"}
	}
	if c.ConfigPath == "" {
		return &ValidationError{Field: "ConfigPath", Message: "required: path to config file"}
	}
	if c.Timeout < 0 {
		return &ValidationError{Field: "Timeout", Message: "must be non-negative"}
	}
	return nil
}
