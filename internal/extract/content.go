package extract

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/platform/web"
)

// VideoContent is the raw material gathered from a video post. Any field
// may be empty.
type VideoContent struct {
	Title       string
	Description string
	Thumbnails  []string
}

// Empty reports whether nothing at all could be fetched.
func (c VideoContent) Empty() bool {
	return strings.TrimSpace(c.Title) == "" &&
		strings.TrimSpace(c.Description) == "" &&
		len(c.Thumbnails) == 0
}

// Fetcher gathers the title, caption and thumbnails of a video post.
// Network failures leave fields empty rather than returning an error.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, target Target) VideoContent
}

// oEmbed is the shared subset of the oEmbed response used by all platforms.
type oEmbed struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// fetchOEmbed returns the oEmbed document at endpoint, or nil on any failure.
func fetchOEmbed(ctx context.Context, client *web.Client, logger *zap.Logger, endpoint string) *oEmbed {
	var out oEmbed
	if err := client.GetJSON(ctx, endpoint, &out); err != nil {
		logger.Debug("oEmbed lookup failed", zap.String("url", endpoint), zap.Error(err))
		return nil
	}
	return &out
}

// longer returns whichever of a and b has more characters, preferring a on a tie.
func longer(a, b string) string {
	if len(strings.TrimSpace(b)) > len(strings.TrimSpace(a)) {
		return b
	}
	return a
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
