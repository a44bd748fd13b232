package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	AllowedOrigins []string

	// Sentiment / fallback classification (HuggingFace Inference API)
	SentimentAPIURL     string
	SentimentModel      string
	FallbackModel       string
	HuggingFaceAPIToken string
	ClassifierTimeout   time.Duration

	// Chat completion
	LLMProvider      string
	ChatModel        string
	OpenAIBaseURL    string
	OpenAIAPIKey     string
	AnthropicBaseURL string
	AnthropicAPIKey  string
	ChatTimeout      time.Duration

	// Chat-log persistence; empty DSN selects the in-memory store.
	ChatDBDSN string

	// Optional MQTT alert channel; empty broker URL disables it.
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from the environment, with a best-effort .env
// file on top, and validates the API keys the enabled external models need.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenvIntDefault("PORT", 8001),
		AllowedOrigins: splitCSV(getenvDefault("CORS_ALLOWED_ORIGINS", "*")),

		SentimentAPIURL:     getenvDefault("SENTIMENT_API_URL", "https://api-inference.huggingface.co"),
		SentimentModel:      getenvDefault("SENTIMENT_MODEL", "nlptown/bert-base-multilingual-uncased-sentiment"),
		FallbackModel:       getenvDefault("FALLBACK_CLASSIFIER_MODEL", "bert-base-multilingual-uncased"),
		HuggingFaceAPIToken: os.Getenv("HUGGINGFACE_API_TOKEN"),
		ClassifierTimeout:   time.Duration(getenvIntDefault("CLASSIFIER_TIMEOUT_SECONDS", 15)) * time.Second,

		LLMProvider:      strings.ToLower(getenvDefault("LLM_PROVIDER", "openai")),
		ChatModel:        getenvDefault("CHAT_MODEL", "gpt-4-turbo-preview"),
		OpenAIBaseURL:    getenvDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		AnthropicBaseURL: getenvDefault("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		ChatTimeout:      time.Duration(getenvIntDefault("CHAT_TIMEOUT_SECONDS", 30)) * time.Second,

		ChatDBDSN: os.Getenv("CHAT_DB_DSN"),

		MQTTBrokerURL:   os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:    getenvDefault("MQTT_CLIENT_ID", "sosai-server"),
		MQTTUsername:    os.Getenv("MQTT_USERNAME"),
		MQTTPassword:    os.Getenv("MQTT_PASSWORD"),
		MQTTTopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "sosai"),
	}

	if cfg.HuggingFaceAPIToken == "" {
		return Config{}, fmt.Errorf("HUGGINGFACE_API_TOKEN is required")
	}
	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
	}
	if cfg.LLMProvider == "claude" && cfg.AnthropicAPIKey == "" {
		return Config{}, fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER=claude")
	}

	return cfg, nil
}

func getenvDefault(key, val string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
