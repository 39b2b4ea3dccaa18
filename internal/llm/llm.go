// Package llm defines the provider-neutral interface used to ask a language
// model for a JSON answer, optionally with images.
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when a model answer contains no JSON object.
var ErrNoJSON = errors.New("no JSON object in model response")

// Image is an inline image sent with a prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Prompt is one request to a model.
type Prompt struct {
	System    string
	User      string
	Images    []Image
	MaxTokens int
}

// Model generates a JSON answer for a prompt.
type Model interface {
	GenerateJSON(ctx context.Context, p Prompt) (string, error)
}

// ExtractJSON returns the span from the first '{' to the last '}' of text,
// which strips markdown fences and chatter around the object.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}

// Decode extracts the JSON object from text and unmarshals it into v.
func Decode(text string, v any) error {
	clean, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return fmt.Errorf("failed to unmarshal model JSON: %w", err)
	}
	return nil
}

// ImageHash calculates the SHA256 hash of the image data.
func ImageHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
