// Package credential resolves and persists the Valyu API key.
package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvAPIKey is the environment variable that takes precedence over the config file.
const EnvAPIKey = "VALYU_API_KEY"

// fileKey is the JSON field holding the key in the config file.
const fileKey = "apiKey"

// DefaultDir returns the per-user config directory.
// Defaults to ~/.valyu, falls back to ./.valyu if home dir unavailable.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".valyu")
	}
	return filepath.Join(home, ".valyu")
}

// DefaultPath returns the full path to the config file.
// Example: ~/.valyu/config.json
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.json")
}

// Store reads and writes the API key.
// There is no locking; the last writer wins.
type Store struct {
	// Path is the config file location. Empty means DefaultPath().
	Path string

	// Getenv looks up environment variables. Nil means os.Getenv.
	Getenv func(string) string
}

// New creates a Store for the config file at path.
func New(path string) *Store {
	return &Store{Path: path}
}

// ConfigPath returns the resolved config file location.
func (s *Store) ConfigPath() string {
	if s == nil || s.Path == "" {
		return DefaultPath()
	}
	return s.Path
}

func (s *Store) getenv(key string) string {
	if s != nil && s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

// Resolve returns the API key, or "" when none is configured.
// The environment wins over the file. Unreadable or unparsable files count as absent.
func (s *Store) Resolve() string {
	if key := s.getenv(EnvAPIKey); key != "" {
		return key
	}
	key, _ := s.Load()[fileKey].(string)
	return key
}

// Load returns the config file contents as a generic mapping.
// Missing or corrupt files yield an empty mapping.
func (s *Store) Load() map[string]any {
	values := map[string]any{}
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return map[string]any{}
	}
	return values
}

// Save writes key into the config file, keeping any other fields already present.
func (s *Store) Save(key string) error {
	path := s.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	values := s.Load()
	values[fileKey] = key

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
