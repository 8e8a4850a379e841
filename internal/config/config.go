package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the retail assistant service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	// Chat completion upstream. When AzureEndpoint is set the Azure OpenAI
	// API shape is used; otherwise the plain OpenAI API.
	OpenAIAPIKey        string
	OpenAIAzureEndpoint string
	ChatModel           string
	ChatMaxTokens       int
	ChatTemperature     float64
	ChatTimeout         time.Duration

	EmbeddingModel      string
	EmbeddingDimensions int
	EmbeddingTimeout    time.Duration

	SearchEndpoint       string
	SearchAPIKey         string
	SearchIndexName      string
	SearchSemanticConfig string
	SearchVectorField    string
	SearchTimeout        time.Duration

	CheckoutBaseURL string
	CheckoutTimeout time.Duration

	// Empty DatabaseURL selects the seeded in-memory catalog.
	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:             envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:     envOrDefault("APP_METRICS_NAMESPACE", "shopassist"),
		AllowAnyOrigin:       false,
		OpenAIAPIKey:         envTrimmed("OPENAI_API_KEY"),
		OpenAIAzureEndpoint:  envTrimmed("AZURE_OPENAI_ENDPOINT"),
		ChatModel:            envOrDefault("CHAT_MODEL", "gpt-4o"),
		ChatMaxTokens:        800,
		ChatTemperature:      0.7,
		ChatTimeout:          30 * time.Second,
		EmbeddingModel:       envOrDefault("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimensions:  1536,
		EmbeddingTimeout:     15 * time.Second,
		SearchEndpoint:       envTrimmed("SEARCH_ENDPOINT"),
		SearchAPIKey:         envTrimmed("SEARCH_API_KEY"),
		SearchIndexName:      envOrDefault("SEARCH_INDEX_NAME", "products"),
		SearchSemanticConfig: envOrDefault("SEARCH_SEMANTIC_CONFIG", "semantic-config"),
		SearchVectorField:    envOrDefault("SEARCH_VECTOR_FIELD", "contentVector"),
		SearchTimeout:        10 * time.Second,
		CheckoutBaseURL:      envTrimmed("CHECKOUT_API_URL"),
		CheckoutTimeout:      20 * time.Second,
		DatabaseURL:          envTrimmed("DATABASE_URL"),
		ShutdownTimeout:      15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatTimeout, err = durationFromEnv("CHAT_TIMEOUT", cfg.ChatTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.EmbeddingTimeout, err = durationFromEnv("EMBEDDING_TIMEOUT", cfg.EmbeddingTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SearchTimeout, err = durationFromEnv("SEARCH_TIMEOUT", cfg.SearchTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.CheckoutTimeout, err = durationFromEnv("CHECKOUT_TIMEOUT", cfg.CheckoutTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatMaxTokens, err = intFromEnv("CHAT_MAX_TOKENS", cfg.ChatMaxTokens)
	if err != nil {
		return Config{}, err
	}
	cfg.ChatTemperature, err = floatFromEnv("CHAT_TEMPERATURE", cfg.ChatTemperature)
	if err != nil {
		return Config{}, err
	}
	cfg.EmbeddingDimensions, err = intFromEnv("EMBEDDING_DIMENSIONS", cfg.EmbeddingDimensions)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.ChatMaxTokens <= 0 {
		return Config{}, fmt.Errorf("CHAT_MAX_TOKENS must be positive")
	}
	if cfg.ChatTemperature < 0 || cfg.ChatTemperature > 2 {
		return Config{}, fmt.Errorf("CHAT_TEMPERATURE must be in [0, 2]")
	}
	if cfg.EmbeddingDimensions <= 0 {
		return Config{}, fmt.Errorf("EMBEDDING_DIMENSIONS must be positive")
	}
	if cfg.ChatTimeout <= 0 || cfg.EmbeddingTimeout <= 0 || cfg.SearchTimeout <= 0 || cfg.CheckoutTimeout <= 0 {
		return Config{}, fmt.Errorf("external call timeouts must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(envTrimmed(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
