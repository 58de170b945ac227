package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/probekit/chatprobe/internal/core"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
endpoint:
  url: "https://api.example.com/v1/chat/completions"
  timeout: 30s

request:
  model: "gpt-4o-mini"
  temperature: 0.2
  top_k: 40

archive:
  type: localfs
  path: "/tmp/chatprobe/transcripts"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Endpoint.URL != "https://api.example.com/v1/chat/completions" {
		t.Errorf("unexpected url: %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Endpoint.Timeout)
	}
	if cfg.Request.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %f", cfg.Request.Temperature)
	}
	if cfg.Request.TopK != 40 {
		t.Errorf("expected top_k 40, got %d", cfg.Request.TopK)
	}

	// Defaults fill keys the file omits
	if cfg.Request.MaxTokens != 512 {
		t.Errorf("expected default max_tokens 512, got %d", cfg.Request.MaxTokens)
	}
	if cfg.Endpoint.APITokenEnv != "OPENAI_API_KEY" {
		t.Errorf("expected default token env, got %s", cfg.Endpoint.APITokenEnv)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("CHATPROBE_TEST_TOKEN", "sk-test")

	content := []byte(`
endpoint:
  api_token: "${CHATPROBE_TEST_TOKEN}"
`)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Endpoint.APIToken != "sk-test" {
		t.Errorf("expected token from env, got %q", cfg.Endpoint.APIToken)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Request.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %f", cfg.Request.Temperature)
	}
	if cfg.Request.TopP != 1.0 {
		t.Errorf("expected top_p 1.0, got %f", cfg.Request.TopP)
	}
	if cfg.Endpoint.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %v", cfg.Endpoint.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"negative temperature", func(c *Config) { c.Request.Temperature = -0.1 }, false},
		{"top_p above one", func(c *Config) { c.Request.TopP = 1.5 }, false},
		{"negative top_k", func(c *Config) { c.Request.TopK = -1 }, false},
		{"zero max_tokens", func(c *Config) { c.Request.MaxTokens = 0 }, false},
		{"bad reasoning effort", func(c *Config) { c.Request.ReasoningEffort = "extreme" }, false},
		{"valid reasoning effort", func(c *Config) { c.Request.ReasoningEffort = "high" }, true},
		{"zero timeout", func(c *Config) { c.Endpoint.Timeout = 0 }, false},
		{"bad archive type", func(c *Config) { c.Archive.Type = "ftp" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, core.ErrConfigInvalid) {
					t.Errorf("expected CONFIG_INVALID, got %v", err)
				}
			}
		})
	}
}

func TestParseExtraParams(t *testing.T) {
	params, err := ParseExtraParams(`{"max_tokens": 9, "seed": 42}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params["max_tokens"] != float64(9) {
		t.Errorf("expected max_tokens 9, got %v", params["max_tokens"])
	}

	params, err = ParseExtraParams("")
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if len(params) != 0 {
		t.Errorf("expected empty map, got %v", params)
	}

	if _, err := ParseExtraParams(`{"broken`); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := ParseExtraParams(`[1, 2]`); err == nil {
		t.Error("expected error for non-object JSON")
	}
}
