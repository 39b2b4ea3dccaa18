package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pantryfy/internal/llm"
	"pantryfy/internal/metrics"
	"pantryfy/internal/platform/web"
	"pantryfy/internal/recipe"
)

// Stage names used in logs and metrics.
const (
	StageFetch         = "fetch"
	StageText          = "text"
	StageVision        = "vision"
	StageStructuredAPI = "structured_api"
	StagePage          = "page"
)

const (
	msgNoVideoModel = "Add GEMINI_API_KEY or OPENAI_API_KEY to enable video extraction."
	msgNoSiteKeys   = "Add an API key (SPOONACULAR_API_KEY, GEMINI_API_KEY or OPENAI_API_KEY) to enable recipe extraction from websites."
	msgAPIOnly      = "The recipe API could not read that page. Add GEMINI_API_KEY or OPENAI_API_KEY to enable AI extraction, or try Manual entry."
	msgCancelled    = "Extraction was cancelled before it finished. Please try again."
	msgUnusable     = "Could not extract a recipe from that link. Try Manual entry instead."
)

// Extractor runs the extraction cascade for one URL at a time. It is safe
// for concurrent use.
type Extractor struct {
	fetchers map[Platform]Fetcher
	text     *TextExtractor
	vision   *VisionExtractor
	site     *SiteExtractor
	hasModel bool
	hasAPI   bool
	logger   *zap.Logger
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithFetcher replaces the content fetcher for a platform.
func WithFetcher(p Platform, f Fetcher) Option {
	return func(x *Extractor) { x.fetchers[p] = f }
}

// New creates an Extractor. model and api may be nil; the stages that need
// them are then skipped with a message naming the missing key.
func New(client *web.Client, model llm.Model, api RecipeAPI, logger *zap.Logger, opts ...Option) *Extractor {
	x := &Extractor{
		fetchers: map[Platform]Fetcher{
			PlatformYouTube:   NewYouTubeFetcher(client, logger),
			PlatformTikTok:    NewTikTokFetcher(client, logger),
			PlatformInstagram: NewInstagramFetcher(client, logger),
		},
		site:     NewSiteExtractor(api, model, client, logger),
		hasModel: model != nil,
		hasAPI:   api != nil,
		logger:   logger,
	}
	if model != nil {
		x.text = NewTextExtractor(model, logger)
		x.vision = NewVisionExtractor(model, client, logger)
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ExtractRecipeFromURL classifies rawURL and runs the matching cascade.
// It never returns a partial recipe: the Outcome is either a recipe with a
// title and at least one ingredient, or a reason for the user.
func (x *Extractor) ExtractRecipeFromURL(ctx context.Context, rawURL string) Outcome {
	start := time.Now()
	target := Classify(strings.TrimSpace(rawURL))

	var out Outcome
	if target.Platform.IsVideo() {
		out = x.videoPath(ctx, strings.TrimSpace(rawURL), target)
	} else {
		out = x.genericPath(ctx, strings.TrimSpace(rawURL))
	}
	out = finalize(out)

	result := metrics.ResultSuccess
	if !out.OK() {
		result = metrics.ResultFailure
	}
	metrics.ExtractionsTotal.WithLabelValues(string(target.Platform), result).Inc()
	metrics.ExtractionDuration.WithLabelValues(string(target.Platform)).Observe(time.Since(start).Seconds())

	x.logger.Info("recipe extraction finished",
		zap.String("platform", string(target.Platform)),
		zap.String("result", result),
		zap.Duration("duration", time.Since(start)),
	)
	return out
}

func (x *Extractor) videoPath(ctx context.Context, rawURL string, target Target) Outcome {
	if !x.hasModel {
		return Failure(msgNoVideoModel)
	}

	content, ok := x.fetch(ctx, rawURL, target)
	if !ok || content.Empty() {
		msg := fmt.Sprintf("Could not fetch video info from %s. The video may be private or unavailable.", target.Platform)
		if target.Platform == PlatformInstagram {
			msg += " Try Manual entry instead."
		}
		return Failure(msg)
	}
	if ctx.Err() != nil {
		return Failure(msgCancelled)
	}

	draft, ok := x.runStage(StageText, func() (*Draft, bool) {
		return x.text.Extract(ctx, content, target.Platform)
	})
	if !ok && len(content.Thumbnails) > 0 && ctx.Err() == nil {
		draft, ok = x.runStage(StageVision, func() (*Draft, bool) {
			return x.vision.Extract(ctx, content.Thumbnails, content, target.Platform)
		})
	} else if !ok {
		x.skipStage(StageVision)
	}

	if !ok {
		if ctx.Err() != nil {
			return Failure(msgCancelled)
		}
		return Failure(videoRemedy(target.Platform))
	}

	if draft.ImageURL == "" && len(content.Thumbnails) > 0 {
		draft.ImageURL = content.Thumbnails[0]
	}
	return Success(draft.Recipe(recipe.SourceLanguageModel))
}

func videoRemedy(p Platform) string {
	if p == PlatformInstagram {
		return "Could not extract a recipe from this Instagram post. Instagram often blocks recipe imports, so try Manual entry instead."
	}
	return fmt.Sprintf("Could not extract a recipe from this %s video. The ingredients were not in the description and could not be identified from the thumbnails; the recipe may only be spoken in the video.", p)
}

func (x *Extractor) genericPath(ctx context.Context, rawURL string) Outcome {
	if !x.hasAPI && !x.hasModel {
		return Failure(msgNoSiteKeys)
	}

	if x.hasAPI {
		draft, ok := x.runStage(StageStructuredAPI, func() (*Draft, bool) {
			return x.site.FromAPI(ctx, rawURL)
		})
		if ok {
			return Success(draft.Recipe(recipe.SourceStructuredAPI))
		}
	} else {
		x.skipStage(StageStructuredAPI)
	}

	if !x.hasModel {
		return Failure(msgAPIOnly)
	}
	if ctx.Err() != nil {
		return Failure(msgCancelled)
	}

	var pageErr error
	draft, ok := x.runStage(StagePage, func() (*Draft, bool) {
		d, err := x.site.FromPage(ctx, rawURL)
		pageErr = err
		return d, err == nil
	})
	if ok {
		return Success(draft.Recipe(recipe.SourceLanguageModel))
	}
	if ctx.Err() != nil {
		return Failure(msgCancelled)
	}

	var pe *PageError
	if errors.As(pageErr, &pe) {
		return Failure(pe.Error())
	}
	return Failure("Failed to extract recipe from URL")
}

// fetch runs the platform fetcher, treating a panic as an empty result.
func (x *Extractor) fetch(ctx context.Context, rawURL string, target Target) (content VideoContent, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			x.logger.Error("extraction stage panicked",
				zap.String("stage", StageFetch), zap.Any("panic", r), zap.Stack("stack"))
			metrics.ExtractionStages.WithLabelValues(StageFetch, metrics.OutcomePanic).Inc()
			content, ok = VideoContent{}, false
		}
	}()

	f, found := x.fetchers[target.Platform]
	if !found {
		return VideoContent{}, false
	}
	content = f.Fetch(ctx, rawURL, target)

	outcome := metrics.OutcomeHit
	if content.Empty() {
		outcome = metrics.OutcomeMiss
	}
	metrics.ExtractionStages.WithLabelValues(StageFetch, outcome).Inc()
	return content, true
}

// runStage runs one extraction stage at most once. A panic is logged and
// counts as a failed stage, and so does a draft without a title or
// ingredients.
func (x *Extractor) runStage(stage string, fn func() (*Draft, bool)) (draft *Draft, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			x.logger.Error("extraction stage panicked",
				zap.String("stage", stage), zap.Any("panic", r), zap.Stack("stack"))
			metrics.ExtractionStages.WithLabelValues(stage, metrics.OutcomePanic).Inc()
			draft, ok = nil, false
		}
	}()

	draft, ok = fn()
	if ok && !draft.Usable() {
		draft, ok = nil, false
	}

	outcome := metrics.OutcomeHit
	if !ok {
		outcome = metrics.OutcomeMiss
		x.logger.Debug("extraction stage produced nothing", zap.String("stage", stage))
	}
	metrics.ExtractionStages.WithLabelValues(stage, outcome).Inc()
	return draft, ok
}

func (x *Extractor) skipStage(stage string) {
	metrics.ExtractionStages.WithLabelValues(stage, metrics.OutcomeSkipped).Inc()
}

// finalize re-checks the success shape at the return boundary and fills
// defaults, so no stage can leak a partial recipe.
func finalize(out Outcome) Outcome {
	if !out.OK() {
		if strings.TrimSpace(out.Reason) == "" {
			return Failure(msgUnusable)
		}
		return out
	}

	r := *out.Recipe
	r.Title = strings.TrimSpace(r.Title)
	if r.Servings < 1 {
		r.Servings = recipe.DefaultServings
	}
	lines := make(recipe.IngredientList, 0, len(r.Ingredients))
	for _, l := range r.Ingredients {
		lines = append(lines, ingredientLine(l.Name, l.Quantity, l.Unit, l.Raw))
	}
	r.Ingredients = lines

	if !r.Usable() {
		return Failure(msgUnusable)
	}
	return Success(r)
}
