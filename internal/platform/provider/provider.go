// Package provider builds the language model selected by the configuration.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pantryfy/internal/config"
	"pantryfy/internal/llm"
	"pantryfy/internal/platform/gemini"
	"pantryfy/internal/platform/openai"
)

const modelTimeout = 2 * time.Minute

// NewModel returns the configured model and a function releasing it. The
// model is an untyped nil when no provider has a key, so callers can
// compare it with nil.
func NewModel(ctx context.Context, cfg *config.Config) (llm.Model, func(), error) {
	switch cfg.Provider() {
	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, gemini.WithTimeout(modelTimeout))
		if err != nil {
			return nil, nil, fmt.Errorf("error creating gemini client: %w", err)
		}
		return c, func() { c.Close() }, nil
	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithHTTPClient(&http.Client{Timeout: modelTimeout})}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		if cfg.LLMModel != "" {
			opts = append(opts, openai.WithModel(cfg.LLMModel))
		}
		return openai.NewClient(cfg.OpenAIAPIKey, opts...), func() {}, nil
	case "":
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider())
	}
}
