package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sosai/internal/domain"
)

type Provider interface {
	Complete(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error)
}

type Config struct {
	Provider         string
	OpenAIBaseURL    string
	OpenAIAPIKey     string
	AnthropicBaseURL string
	AnthropicAPIKey  string
	Timeout          time.Duration
}

func NewProvider(cfg Config) (Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(client, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey), nil
	case "claude":
		return NewClaudeProvider(client, cfg.AnthropicBaseURL, cfg.AnthropicAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
