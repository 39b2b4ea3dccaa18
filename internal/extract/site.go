package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/llm"
	"pantryfy/internal/platform/spoonacular"
	"pantryfy/internal/platform/web"
)

const (
	maxJSONLDLength   = 5000
	maxPageTextLength = 6000

	siteSystemPrompt = "You are a recipe extraction assistant. Extract recipe data from the provided content. Return valid JSON only."
)

// RecipeAPI is the structured recipe API used for ordinary web pages.
type RecipeAPI interface {
	ExtractRecipe(ctx context.Context, pageURL string) (*spoonacular.ExtractedRecipe, error)
}

var _ RecipeAPI = (*spoonacular.Client)(nil)

// SiteExtractor handles recipe web pages: first through the recipe API,
// then by sending the page's structured data or text to a language model.
// Either dependency may be nil.
type SiteExtractor struct {
	api    RecipeAPI
	model  llm.Model
	web    *web.Client
	logger *zap.Logger
}

// NewSiteExtractor creates a SiteExtractor.
func NewSiteExtractor(api RecipeAPI, model llm.Model, client *web.Client, logger *zap.Logger) *SiteExtractor {
	return &SiteExtractor{api: api, model: model, web: client, logger: logger}
}

// FromAPI returns the recipe the structured API finds at pageURL.
func (e *SiteExtractor) FromAPI(ctx context.Context, pageURL string) (*Draft, bool) {
	if e.api == nil {
		return nil, false
	}
	data, err := e.api.ExtractRecipe(ctx, pageURL)
	if err != nil {
		e.logger.Warn("recipe API extraction failed", zap.String("stage", StageStructuredAPI), zap.Error(err))
		return nil, false
	}
	if data == nil || strings.TrimSpace(data.Title) == "" || len(data.ExtendedIngredients) == 0 {
		return nil, false
	}

	d := &Draft{
		Title:    strings.TrimSpace(data.Title),
		Servings: servingsOrDefault(float64(data.Servings)),
		ImageURL: data.Image,
	}
	for _, in := range data.ExtendedIngredients {
		name := in.Name
		if strings.TrimSpace(name) == "" {
			name = in.OriginalName
		}
		d.Ingredients = append(d.Ingredients, ingredientLine(name, in.Amount, in.Unit, in.Original))
	}
	return d, true
}

// PageError explains why the page-reading stage produced nothing. Its
// message is safe to show to users.
type PageError struct {
	msg string
	err error
}

func (e *PageError) Error() string { return e.msg }
func (e *PageError) Unwrap() error { return e.err }

// FromPage fetches pageURL and asks the model to read the recipe from its
// JSON-LD block, or from its visible text when there is none.
func (e *SiteExtractor) FromPage(ctx context.Context, pageURL string) (*Draft, error) {
	if e.model == nil {
		return nil, &PageError{msg: "no language model configured"}
	}

	body, err := e.web.Get(ctx, pageURL)
	if err != nil {
		var statusErr *web.StatusError
		if errors.As(err, &statusErr) {
			return nil, &PageError{msg: fmt.Sprintf("Could not fetch URL (HTTP %d)", statusErr.StatusCode), err: err}
		}
		return nil, &PageError{msg: "Could not fetch URL", err: err}
	}

	doc, err := web.ParseHTML(body)
	if err != nil {
		return nil, &PageError{msg: "Could not find recipe content on that page", err: err}
	}

	var prompt string
	if ld := web.RecipeJSONLD(doc); ld != "" {
		prompt = fmt.Sprintf("Extract the recipe from this JSON-LD structured data found on %s:\n\n%s",
			pageURL, web.Truncate(ld, maxJSONLDLength))
	} else {
		text := web.Truncate(web.VisibleText(doc), maxPageTextLength)
		if text == "" {
			return nil, &PageError{msg: "Could not find recipe content on that page"}
		}
		prompt = fmt.Sprintf("Extract the recipe from this web page content (%s):\n\n%s\n\nFind the recipe title and ingredients. Ignore navigation, ads, non-recipe content.",
			pageURL, text)
	}

	answer, err := e.model.GenerateJSON(ctx, llm.Prompt{
		System: siteSystemPrompt,
		User:   prompt + "\n\n" + recipeSchema,
	})
	if err != nil {
		e.logger.Warn("page extraction failed", zap.String("stage", StagePage), zap.Error(err))
		return nil, &PageError{msg: "AI extraction service error", err: err}
	}

	draft, ok := decodeDraft(answer)
	if !ok {
		return nil, &PageError{msg: "Could not find recipe content on that page"}
	}
	return draft, nil
}
