package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: ":9999"
db_path: /tmp/r.db
request_timeout_seconds: 30
completion_only_markers: ["-raw"]
cors_enabled: true
cors_origins: ["http://localhost:5173"]
temperature: 0.2
service:
  endpoint_url: http://localhost:11434/api/chat
  model_name: llama3
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DBPath != "/tmp/r.db" || cfg.RequestTimeoutSeconds != 30 || !cfg.CORSEnabled {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CompletionOnlyMarkers) != 1 || cfg.CompletionOnlyMarkers[0] != "-raw" || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("lists not decoded: %+v", cfg)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.2 {
		t.Fatalf("temperature=%v", cfg.Temperature)
	}
	if cfg.Service.EndpointURL != "http://localhost:11434/api/chat" || cfg.Service.ModelName != "llama3" {
		t.Fatalf("service not decoded: %+v", cfg.Service)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","history_limit":10,"service":{"endpointUrl":"https://api.mistral.ai/v1/chat/completions","apiKey":"k"}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.HistoryLimit != 10 || cfg.Service.APIKey != "k" || cfg.Service.EndpointURL == "" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nlog_level=\"debug\"\nmax_tokens=256\n\n[service]\nendpoint_url=\"http://localhost:1234/v1/chat/completions\"\nmodel_name=\"qwen\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.LogLevel != "debug" || cfg.MaxTokens != 256 || cfg.Service.ModelName != "qwen" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := ApplyDefaults(Config{RequestTimeoutSeconds: -3})
	if cfg.Addr != DefaultAddr || cfg.DBPath != DefaultDBPath || cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.MaxBodyBytes != DefaultMaxBodyBytes || cfg.HistoryLimit != DefaultHistoryLimit || cfg.RequestTimeoutSeconds != 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	kept := ApplyDefaults(Config{Addr: ":1", HistoryLimit: -1})
	if kept.Addr != ":1" || kept.HistoryLimit != -1 {
		t.Fatalf("explicit values overwritten: %+v", kept)
	}
}
