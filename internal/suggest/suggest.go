// Package suggest proposes a dish for a set of ingredients.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/llm"
)

const suggestionMaxTokens = 200

// ErrNoIngredients is returned when nothing was given to cook with.
var ErrNoIngredients = errors.New("at least one ingredient is required")

// Suggestion is a single dish idea.
type Suggestion struct {
	Dish   string `json:"dish"`
	Reason string `json:"reason"`
	Tip    string `json:"tip"`
}

// Service asks a language model for a dish, with a fixed answer when no
// model is configured or the model fails.
type Service struct {
	model  llm.Model
	logger *zap.Logger
}

// NewService creates a Service. model may be nil.
func NewService(model llm.Model, logger *zap.Logger) *Service {
	return &Service{model: model, logger: logger}
}

// Suggest returns one dish that uses the given ingredients.
func (s *Service) Suggest(ctx context.Context, ingredients []string) (Suggestion, error) {
	var names []string
	for _, in := range ingredients {
		if n := strings.TrimSpace(in); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return Suggestion{}, ErrNoIngredients
	}
	if s.model == nil {
		return Fallback(names), nil
	}

	answer, err := s.model.GenerateJSON(ctx, llm.Prompt{
		User:      prompt(names),
		MaxTokens: suggestionMaxTokens,
	})
	if err != nil {
		s.logger.Warn("suggestion failed, using fallback", zap.Error(err))
		return Fallback(names), nil
	}

	var out Suggestion
	if err := llm.Decode(answer, &out); err != nil || strings.TrimSpace(out.Dish) == "" {
		s.logger.Warn("suggestion answer unusable, using fallback", zap.Error(err))
		return Fallback(names), nil
	}
	return out, nil
}

// Fallback is the suggestion used without a model.
func Fallback(ingredients []string) Suggestion {
	first := ingredients
	if len(first) > 3 {
		first = first[:3]
	}
	return Suggestion{
		Dish:   "Stir Fry",
		Reason: "A quick stir fry is perfect with " + strings.Join(first, ", "),
		Tip:    "Cook on high heat and keep ingredients moving for the best texture",
	}
}

func prompt(ingredients []string) string {
	return fmt.Sprintf(`I have these ingredients: %s.

Suggest ONE creative, practical dish I can make. Be specific.

Return JSON only:
{"dish": "name of the dish", "reason": "why this works with these ingredients (1 sentence)", "tip": "one pro tip to make it delicious"}`,
		strings.Join(ingredients, ", "))
}
