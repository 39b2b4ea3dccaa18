package extract

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/platform/web"
)

const (
	tikTokOEmbedURL = "https://www.tiktok.com/oembed?url="
	// Captions shorter than this are usually just hashtags; the page
	// meta description is tried too.
	minTikTokCaption = 30
)

// TikTokFetcher reads a TikTok post's oEmbed caption and, when that is
// short, the page's meta description.
type TikTokFetcher struct {
	web    *web.Client
	logger *zap.Logger
}

// NewTikTokFetcher creates a TikTokFetcher.
func NewTikTokFetcher(client *web.Client, logger *zap.Logger) *TikTokFetcher {
	return &TikTokFetcher{web: client, logger: logger}
}

// Fetch implements Fetcher.
func (f *TikTokFetcher) Fetch(ctx context.Context, rawURL string, _ Target) VideoContent {
	var content VideoContent

	if oe := fetchOEmbed(ctx, f.web, f.logger, tikTokOEmbedURL+url.QueryEscape(rawURL)); oe != nil {
		// The oEmbed title is the caption.
		content.Title = strings.TrimSpace(oe.Title)
		content.Description = content.Title
		content.Thumbnails = appendUnique(content.Thumbnails, oe.ThumbnailURL)
	}

	if len(content.Description) >= minTikTokCaption {
		return content
	}

	body, err := f.web.Get(ctx, rawURL)
	if err != nil {
		f.logger.Debug("TikTok page unavailable", zap.String("url", rawURL), zap.Error(err))
		return content
	}
	doc, err := web.ParseHTML(body)
	if err != nil {
		return content
	}

	meta := web.Meta(doc, "og:description")
	if meta == "" {
		meta = web.Meta(doc, "description")
	}
	content.Description = longer(content.Description, meta)
	if content.Title == "" {
		content.Title = web.Title(doc)
	}
	return content
}
