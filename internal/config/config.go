// Package config loads service settings from config.json, .env and the
// environment, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey      string   `json:"gemini_api_key"`
	OpenAIAPIKey      string   `json:"openai_api_key"`
	OpenAIBaseURL     string   `json:"openai_base_url"`
	LLMProvider       string   `json:"llm_provider"`
	LLMModel          string   `json:"llm_model"`
	SpoonacularAPIKey string   `json:"spoonacular_api_key"`
	DatabaseURL       string   `json:"database_url"`
	Port              int      `json:"port"`
	AllowedOrigins    []string `json:"allowed_origins"`
	LogLevel          string   `json:"log_level"`
	LogFormat         string   `json:"log_format"`
	HTTPTimeout       Duration `json:"http_timeout"`
}

// Duration reads a JSON string such as "15s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"15s\": %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func defaults() *Config {
	return &Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:8081"},
		LogLevel:       "info",
		LogFormat:      "json",
		HTTPTimeout:    Duration(15 * time.Second),
	}
}

// Load reads path (if it exists), then .env, then the environment.
// Malformed values are errors.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
			}
		}
	}

	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.LLMProvider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLMProvider))
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.SpoonacularAPIKey = getEnv("SPOONACULAR_API_KEY", cfg.SpoonacularAPIKey)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", cfg.LogFormat))

	if v, ok := os.LookupEnv("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.Port = port
	}
	if v, ok := os.LookupEnv("HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT value: %w", err)
		}
		cfg.HTTPTimeout = Duration(d)
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT value: %s", time.Duration(c.HTTPTimeout))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL value: %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT value: %q", c.LogFormat)
	}
	switch c.LLMProvider {
	case "":
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("LLM_PROVIDER is gemini but GEMINI_API_KEY is not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("LLM_PROVIDER is openai but OPENAI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("invalid LLM_PROVIDER value: %q", c.LLMProvider)
	}
	return nil
}

// Provider returns the language model provider to use, or "" when no key
// is configured. An explicit LLM_PROVIDER wins; otherwise Gemini is
// preferred over OpenAI.
func (c *Config) Provider() string {
	switch {
	case c.LLMProvider != "":
		return c.LLMProvider
	case c.GeminiAPIKey != "":
		return ProviderGemini
	case c.OpenAIAPIKey != "":
		return ProviderOpenAI
	}
	return ""
}

// Timeout returns the per-call HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
