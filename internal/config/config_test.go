package config

import (
	"strings"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HUGGINGFACE_API_TOKEN", "hf-test-token")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")
}

func TestLoadRequiresHuggingFaceToken(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HUGGINGFACE_API_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without HUGGINGFACE_API_TOKEN")
	}
}

func TestLoadValidatesProviderKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_PROVIDER", "claude")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Fatalf("expected anthropic key error, got %v", err)
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "claude" {
		t.Fatalf("LLMProvider = %q, want claude", cfg.LLMProvider)
	}
}

// Provider names are matched case-insensitively, so a capitalized value must
// hit the same key validation as the lowercase one.
func TestLoadNormalizesProviderCase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("expected openai key error, got %v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err == nil {
		t.Fatal("expected error without OPENAI_API_KEY for default provider")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8001 {
		t.Fatalf("Port = %d, want 8001", cfg.Port)
	}
	if cfg.HTTPAddr() != ":8001" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr())
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.ChatModel != "gpt-4-turbo-preview" {
		t.Fatalf("ChatModel = %q", cfg.ChatModel)
	}
}
