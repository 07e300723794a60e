package credential_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperengineering/valyu/internal/credential"
)

func noEnv(string) string { return "" }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return values
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	got := credential.DefaultPath()
	want := filepath.Join("/home/tester", ".valyu", "config.json")
	if got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestStore_ConfigPath_DefaultsWhenEmpty(t *testing.T) {
	s := credential.New("")
	if s.ConfigPath() != credential.DefaultPath() {
		t.Errorf("ConfigPath() = %q, want %q", s.ConfigPath(), credential.DefaultPath())
	}
}

func TestStore_Resolve(t *testing.T) {
	tests := []struct {
		name string
		env  string
		file string // empty means no file
		want string
	}{
		{"env only", "env-key", "", "env-key"},
		{"env beats file", "env-key", `{"apiKey":"file-key"}`, "env-key"},
		{"file only", "", `{"apiKey":"file-key"}`, "file-key"},
		{"no sources", "", "", ""},
		{"corrupt file", "", `{"apiKey":`, ""},
		{"missing field", "", `{"other":"x"}`, ""},
		{"non-string key", "", `{"apiKey":42}`, ""},
		{"json array", "", `["apiKey"]`, ""},
		{"json null", "", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if tt.file != "" {
				writeFile(t, path, tt.file)
			}
			s := &credential.Store{
				Path: path,
				Getenv: func(key string) string {
					if key == credential.EnvAPIKey {
						return tt.env
					}
					return ""
				},
			}
			if got := s.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_Resolve_UsesProcessEnvByDefault(t *testing.T) {
	t.Setenv(credential.EnvAPIKey, "process-key")
	s := credential.New(filepath.Join(t.TempDir(), "config.json"))
	if got := s.Resolve(); got != "process-key" {
		t.Errorf("Resolve() = %q, want %q", got, "process-key")
	}
}

func TestStore_Save_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".valyu", "config.json")
	s := &credential.Store{Path: path, Getenv: noEnv}

	if err := s.Save("first-key"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	values := readJSON(t, path)
	if values["apiKey"] != "first-key" {
		t.Errorf("apiKey = %v, want %q", values["apiKey"], "first-key")
	}
	if got := s.Resolve(); got != "first-key" {
		t.Errorf("Resolve() after Save = %q, want %q", got, "first-key")
	}
}

func TestStore_Save_PreservesOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"apiKey":"old","region":"eu","limits":{"daily":5}}`)
	s := &credential.Store{Path: path, Getenv: noEnv}

	if err := s.Save("new-key"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	values := readJSON(t, path)
	if values["apiKey"] != "new-key" {
		t.Errorf("apiKey = %v, want %q", values["apiKey"], "new-key")
	}
	if values["region"] != "eu" {
		t.Errorf("region = %v, want %q", values["region"], "eu")
	}
	limits, ok := values["limits"].(map[string]any)
	if !ok || limits["daily"] != float64(5) {
		t.Errorf("limits = %v, want daily=5", values["limits"])
	}
}

func TestStore_Save_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `not json at all`)
	s := &credential.Store{Path: path, Getenv: noEnv}

	if err := s.Save("fresh"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	values := readJSON(t, path)
	if len(values) != 1 || values["apiKey"] != "fresh" {
		t.Errorf("config = %v, want only apiKey=fresh", values)
	}
}

func TestStore_Save_IndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := &credential.Store{Path: path, Getenv: noEnv}

	if err := s.Save("k"); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"apiKey\": \"k\"") {
		t.Errorf("config not indented with two spaces: %q", data)
	}
}

func TestStore_Save_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "x")

	s := &credential.Store{Path: filepath.Join(blocker, "config.json"), Getenv: noEnv}
	if err := s.Save("k"); err == nil {
		t.Fatal("Save() into a path under a regular file should fail")
	}
}
