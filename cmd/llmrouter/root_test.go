package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llmrouter/pkg/types"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"LLMROUTER_CONFIG", "LLMROUTER_DB", "LLMROUTER_LOG_LEVEL", "LLMROUTER_ADDR"} {
		t.Setenv(k, "")
	}
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCmd(t *testing.T) {
	out, err := runCLI(t, "classify", "http://localhost:11434/api/chat", "https://api.mistral.ai/v1/chat/completions", "http://host/api/generate")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(lines[1], "ollama") || !strings.Contains(lines[1], "http://localhost:11434/api/chat/api/generate") {
		t.Fatalf("ollama line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "mistral-cloud") || !strings.Contains(lines[2], "https://api.mistral.ai/api/generate") {
		t.Fatalf("mistral line: %q", lines[2])
	}
	if !strings.Contains(lines[3], "api-generate") || !strings.HasSuffix(strings.TrimSpace(lines[3]), "-") {
		t.Fatalf("generate line: %q", lines[3])
	}
}

func TestConfigSetShowAndSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"bonjour"}}]}`))
	}))
	defer srv.Close()
	db := filepath.Join(t.TempDir(), "router.db")

	out, err := runCLI(t, "--db", db, "config", "set", "--endpoint", srv.URL+"/v1/chat/completions", "--model", "m", "--api-key", "secret")
	if err != nil {
		t.Fatalf("config set: %v", err)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("api key printed: %s", out)
	}

	out, err = runCLI(t, "--db", db, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	var cfg types.ServiceConfig
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if cfg.ModelName != "m" || cfg.APIKey != "********" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	// Unset flags keep stored values.
	if _, err := runCLI(t, "--db", db, "config", "set", "--model", "m2"); err != nil {
		t.Fatalf("config set model: %v", err)
	}
	out, _ = runCLI(t, "--db", db, "config", "show")
	_ = json.Unmarshal([]byte(out), &cfg)
	if cfg.ModelName != "m2" || cfg.EndpointURL != srv.URL+"/v1/chat/completions" {
		t.Fatalf("partial set lost fields: %+v", cfg)
	}

	out, err = runCLI(t, "--db", db, "send", "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if strings.TrimSpace(out) != "bonjour" {
		t.Fatalf("send output=%q", out)
	}

	out, err = runCLI(t, "--db", db, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "bonjour") {
		t.Fatalf("history output:\n%s", out)
	}
}

func TestConfigSet_RejectsBadURL(t *testing.T) {
	db := filepath.Join(t.TempDir(), "router.db")
	if _, err := runCLI(t, "--db", db, "config", "set", "--endpoint", "localhost:11434"); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestConfigFileSeedsService(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llmrouter.yaml")
	yml := "db_path: " + filepath.Join(dir, "r.db") + "\nservice:\n  endpoint_url: http://localhost:11434/api/chat\n  model_name: llama3\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `"modelName": "llama3"`) {
		t.Fatalf("seed not visible:\n%s", out)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "classify", "x"); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
