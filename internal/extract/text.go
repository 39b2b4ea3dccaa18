package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/llm"
	"pantryfy/internal/platform/web"
)

const (
	// Descriptions this short never hold a recipe.
	minDescriptionLength = 20
	maxDescriptionLength = 6000

	textSystemPrompt = "You are a recipe extraction assistant. Extract recipe ingredients from video descriptions. " +
		"If the description lists ingredients, use those exact amounts. If only ingredient names are mentioned " +
		"without amounts, estimate reasonable quantities for a home cook. Always return valid JSON."
)

// TextExtractor asks a language model to read a recipe out of a video's
// title and caption.
type TextExtractor struct {
	model  llm.Model
	logger *zap.Logger
}

// NewTextExtractor creates a TextExtractor.
func NewTextExtractor(model llm.Model, logger *zap.Logger) *TextExtractor {
	return &TextExtractor{model: model, logger: logger}
}

// Extract returns the recipe found in content, or (nil, false).
func (e *TextExtractor) Extract(ctx context.Context, content VideoContent, platform Platform) (*Draft, bool) {
	if len(strings.TrimSpace(content.Description)) <= minDescriptionLength {
		return nil, false
	}

	answer, err := e.model.GenerateJSON(ctx, llm.Prompt{
		System: textSystemPrompt,
		User:   textPrompt(content, platform),
	})
	if err != nil {
		e.logger.Warn("text extraction failed", zap.String("stage", StageText), zap.Error(err))
		return nil, false
	}

	draft, ok := decodeDraft(answer)
	if !ok {
		e.logger.Warn("text extraction returned no recipe", zap.String("stage", StageText))
	}
	return draft, ok
}

func textPrompt(content VideoContent, platform Platform) string {
	return fmt.Sprintf(`This is the title and description from a %s cooking video:

Title: %s

Description/Caption:
%s

Extract the recipe from this video description. The ingredients and amounts are usually listed in the description or caption. If amounts are not specified, estimate reasonable quantities for 4 servings.

%s`, platform, content.Title, web.Truncate(content.Description, maxDescriptionLength), recipeSchema)
}
