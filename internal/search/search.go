// Package search finds recipes that can be made from the ingredients at hand.
package search

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"pantryfy/internal/ingredient"
	"pantryfy/internal/metrics"
	"pantryfy/internal/platform/spoonacular"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 30 * time.Minute
)

// ErrNoIngredients is returned for an empty search.
var ErrNoIngredients = errors.New("at least one ingredient is required")

// ErrNotConfigured is returned when no recipe API key is set.
var ErrNotConfigured = errors.New("recipe search needs SPOONACULAR_API_KEY")

// Finder looks recipes up by ingredient.
type Finder interface {
	FindByIngredients(ctx context.Context, ingredients []string, opts spoonacular.SearchOptions) ([]spoonacular.RecipeMatch, error)
}

var _ Finder = (*spoonacular.Client)(nil)

// Match is one search result with its match score.
type Match struct {
	spoonacular.RecipeMatch
	Score float64 `json:"score"`
}

// Results groups matches by how many ingredients are missing.
type Results struct {
	CanMakeNow  []Match `json:"canMakeNow"`
	AlmostThere []Match `json:"almostThere"`
	NeedMore    []Match `json:"needMore"`
}

// Service searches through a Finder and caches the answers.
type Service struct {
	finder Finder
	cache  *expirable.LRU[string, []spoonacular.RecipeMatch]
	logger *zap.Logger
}

// NewService creates a Service. finder may be nil, in which case every
// search returns ErrNotConfigured.
func NewService(finder Finder, logger *zap.Logger) *Service {
	return &Service{
		finder: finder,
		cache:  expirable.NewLRU[string, []spoonacular.RecipeMatch](defaultCacheSize, nil, defaultCacheTTL),
		logger: logger,
	}
}

// Search queries the finder (or the cache) with the trimmed, lowercased
// ingredient names and groups the results. Names that share a grocery key
// share a cache entry.
func (s *Service) Search(ctx context.Context, ingredients []string, opts spoonacular.SearchOptions) (Results, error) {
	names := cleanNames(ingredients)
	if len(names) == 0 {
		return Results{}, ErrNoIngredients
	}
	if s.finder == nil {
		return Results{}, ErrNotConfigured
	}

	key := cacheKey(names, opts)
	if cached, ok := s.cache.Get(key); ok {
		metrics.SearchCacheLookups.WithLabelValues(metrics.OutcomeHit).Inc()
		return Categorize(cached), nil
	}
	metrics.SearchCacheLookups.WithLabelValues(metrics.OutcomeMiss).Inc()

	found, err := s.finder.FindByIngredients(ctx, names, opts)
	if err != nil {
		s.logger.Warn("recipe search failed", zap.Strings("ingredients", names), zap.Error(err))
		return Results{}, err
	}
	s.cache.Add(key, found)
	return Categorize(found), nil
}

// Score is the share of a recipe's ingredients already at hand.
func Score(m spoonacular.RecipeMatch) float64 {
	total := m.UsedIngredientCount + m.MissedIngredientCount
	if total == 0 {
		return 0
	}
	return float64(m.UsedIngredientCount) / float64(total)
}

// Categorize splits matches into those missing nothing, one or two, or more
// ingredients, each sorted by score, best first.
func Categorize(found []spoonacular.RecipeMatch) Results {
	r := Results{CanMakeNow: []Match{}, AlmostThere: []Match{}, NeedMore: []Match{}}
	for _, m := range found {
		match := Match{RecipeMatch: m, Score: Score(m)}
		switch {
		case m.MissedIngredientCount == 0:
			r.CanMakeNow = append(r.CanMakeNow, match)
		case m.MissedIngredientCount <= 2:
			r.AlmostThere = append(r.AlmostThere, match)
		default:
			r.NeedMore = append(r.NeedMore, match)
		}
	}
	for _, group := range [][]Match{r.CanMakeNow, r.AlmostThere, r.NeedMore} {
		slices.SortStableFunc(group, func(a, b Match) int {
			return cmp.Compare(b.Score, a.Score)
		})
	}
	return r
}

// cleanNames trims, lowercases and deduplicates names, dropping blanks.
func cleanNames(ingredients []string) []string {
	var names []string
	for _, raw := range ingredients {
		n := strings.ToLower(strings.TrimSpace(raw))
		if n != "" && !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

func cacheKey(names []string, opts spoonacular.SearchOptions) string {
	var keys []string
	for _, n := range names {
		if k := ingredient.Normalize(n); k != "" && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return strings.Join(keys, ",") + "|" + strconv.Itoa(opts.MaxTime) + "|" + opts.Cuisine + "|" + opts.Diet
}
