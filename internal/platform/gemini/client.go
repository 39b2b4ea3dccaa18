package gemini

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pantryfy/internal/llm"
)

const (
	// DefaultModel is used when no model name is configured.
	DefaultModel = "gemini-1.5-flash"
	// DefaultTimeout bounds one GenerateJSON call.
	DefaultTimeout = 2 * time.Minute
)

// Client is a client for the Gemini API.
type Client struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

var _ llm.Model = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a new Gemini client.
func NewClient(ctx context.Context, apiKey, modelName string, opts ...Option) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	c := &Client{client: client, modelName: modelName, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateJSON sends the prompt, with any images inline, and returns the
// model's JSON answer.
func (c *Client) GenerateJSON(ctx context.Context, p llm.Prompt) (string, error) {
	// A model value carries its own config, so build one per call.
	model := c.client.GenerativeModel(c.modelName)
	model.ResponseMIMEType = "application/json"
	if p.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(p.MaxTokens))
	}
	if p.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}

	parts := make([]genai.Part, 0, len(p.Images)+1)
	for _, img := range p.Images {
		parts = append(parts, genai.ImageData(imageFormat(img.MIMEType), img.Data))
	}
	parts = append(parts, genai.Text(p.User))

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini: unexpected response format")
	}
	return sb.String(), nil
}

// imageFormat turns "image/jpeg" into the "jpeg" form genai.ImageData expects.
// callContext bounds a single request by the client's timeout.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, cmp.Or(c.timeout, DefaultTimeout))
}

func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" || format == "jpg" {
		return "jpeg"
	}
	return format
}
