package extract

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"pantryfy/internal/platform/web"
)

const (
	instagramHost      = "https://www.instagram.com"
	instagramOEmbedURL = instagramHost + "/api/v1/oembed/?url="
)

var instagramShortcodeRe = regexp.MustCompile(`instagram\.com/(?:p|reel|reels)/([A-Za-z0-9_-]+)`)

// InstagramFetcher tries the oEmbed endpoint, then the captioned embed page,
// then the post page itself. Later steps run only while no caption has been
// found. Instagram blocks anonymous access often, so an empty result is
// routine.
type InstagramFetcher struct {
	web    *web.Client
	logger *zap.Logger
}

// NewInstagramFetcher creates an InstagramFetcher.
func NewInstagramFetcher(client *web.Client, logger *zap.Logger) *InstagramFetcher {
	return &InstagramFetcher{web: client, logger: logger}
}

// Fetch implements Fetcher.
func (f *InstagramFetcher) Fetch(ctx context.Context, rawURL string, _ Target) VideoContent {
	var content VideoContent

	if oe := fetchOEmbed(ctx, f.web, f.logger, instagramOEmbedURL+url.QueryEscape(rawURL)); oe != nil {
		content.Description = strings.TrimSpace(oe.Title)
		content.Thumbnails = appendUnique(content.Thumbnails, oe.ThumbnailURL)
	}

	if content.Description == "" {
		if m := instagramShortcodeRe.FindStringSubmatch(rawURL); m != nil {
			f.readEmbed(ctx, m[1], &content)
		}
	}

	if content.Description == "" {
		f.readPost(ctx, rawURL, &content)
	}
	return content
}

// readEmbed parses the captioned embed page for the caption and media image.
func (f *InstagramFetcher) readEmbed(ctx context.Context, shortcode string, content *VideoContent) {
	embedURL := fmt.Sprintf("%s/p/%s/embed/captioned/", instagramHost, shortcode)
	body, err := f.web.Get(ctx, embedURL)
	if err != nil {
		f.logger.Debug("Instagram embed unavailable", zap.String("shortcode", shortcode), zap.Error(err))
		return
	}
	doc, err := web.ParseHTML(body)
	if err != nil {
		return
	}

	caption := doc.Find(".Caption").First()
	caption.Find(".CaptionUsername, .CaptionComments").Remove()
	caption.Find("br").ReplaceWithHtml("\n")
	content.Description = strings.TrimSpace(caption.Text())

	doc.Find("img.EmbeddedMediaImage").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if src, ok := s.Attr("src"); ok && src != "" {
			content.Thumbnails = appendUnique(content.Thumbnails, src)
			return false
		}
		return true
	})
}

// readPost reads the Open Graph tags of the post page.
func (f *InstagramFetcher) readPost(ctx context.Context, rawURL string, content *VideoContent) {
	body, err := f.web.Get(ctx, rawURL)
	if err != nil {
		f.logger.Debug("Instagram post page unavailable", zap.String("url", rawURL), zap.Error(err))
		return
	}
	doc, err := web.ParseHTML(body)
	if err != nil {
		return
	}
	content.Description = web.Meta(doc, "og:description")
	content.Thumbnails = appendUnique(content.Thumbnails, web.Meta(doc, "og:image"))
	if content.Title == "" {
		content.Title = web.Meta(doc, "og:title")
	}
}
