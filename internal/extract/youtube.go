package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"pantryfy/internal/platform/web"
)

const (
	youTubeHost      = "https://www.youtube.com"
	youTubeThumbHost = "https://i.ytimg.com"
	maxThumbnails    = 4
)

var (
	// ytInitialData carries the description in a simpleText run.
	ytDataDescriptionRe = regexp.MustCompile(`"description":\{"simpleText":"((?:[^"\\]|\\.)*)"\}`)
	youTubeTitleSuffix  = regexp.MustCompile(`\s*-\s*YouTube$`)
)

// playerResponse is the subset of ytInitialPlayerResponse we read.
type playerResponse struct {
	VideoDetails struct {
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Microformat struct {
		PlayerMicroformatRenderer struct {
			Description struct {
				SimpleText string `json:"simpleText"`
			} `json:"description"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

// YouTubeFetcher reads a YouTube video's oEmbed document and watch page.
type YouTubeFetcher struct {
	web    *web.Client
	logger *zap.Logger
}

// NewYouTubeFetcher creates a YouTubeFetcher.
func NewYouTubeFetcher(client *web.Client, logger *zap.Logger) *YouTubeFetcher {
	return &YouTubeFetcher{web: client, logger: logger}
}

// Fetch implements Fetcher.
func (f *YouTubeFetcher) Fetch(ctx context.Context, _ string, target Target) VideoContent {
	var content VideoContent
	watchURL := fmt.Sprintf("%s/watch?v=%s", youTubeHost, target.VideoID)

	var oembedThumb string
	endpoint := fmt.Sprintf("%s/oembed?url=%s&format=json", youTubeHost, url.QueryEscape(watchURL))
	if oe := fetchOEmbed(ctx, f.web, f.logger, endpoint); oe != nil {
		content.Title = strings.TrimSpace(oe.Title)
		oembedThumb = oe.ThumbnailURL
	}

	body, err := f.web.Get(ctx, watchURL)
	if err != nil {
		f.logger.Debug("YouTube watch page unavailable", zap.String("video_id", target.VideoID), zap.Error(err))
	} else {
		f.readWatchPage(body, &content)
	}

	content.Thumbnails = f.thumbnails(ctx, target.VideoID, oembedThumb)
	return content
}

// readWatchPage fills the description, and the title when oEmbed had none,
// from the watch page. The longest description candidate wins.
func (f *YouTubeFetcher) readWatchPage(body []byte, content *VideoContent) {
	page := string(body)

	doc, err := web.ParseHTML(body)
	if err != nil {
		f.logger.Debug("YouTube watch page is not HTML", zap.Error(err))
		return
	}
	content.Description = web.Meta(doc, "og:description")

	if pr, ok := parsePlayerResponse(page); ok {
		content.Description = longer(content.Description, pr.VideoDetails.ShortDescription)
		content.Description = longer(content.Description, pr.Microformat.PlayerMicroformatRenderer.Description.SimpleText)
		if content.Title == "" {
			content.Title = strings.TrimSpace(pr.VideoDetails.Title)
		}
	}

	if content.Description == "" {
		content.Description = initialDataDescription(page)
	}

	if content.Title == "" {
		content.Title = youTubeTitleSuffix.ReplaceAllString(web.Title(doc), "")
	}
}

// parsePlayerResponse decodes the object assigned to ytInitialPlayerResponse.
// The decoder stops at the end of the first value, so the trailing script
// is ignored.
func parsePlayerResponse(page string) (*playerResponse, bool) {
	start := jsonAssignment(page, "ytInitialPlayerResponse")
	if start < 0 {
		return nil, false
	}
	var pr playerResponse
	if err := json.NewDecoder(strings.NewReader(page[start:])).Decode(&pr); err != nil {
		return nil, false
	}
	return &pr, true
}

// initialDataDescription pulls the simpleText description out of ytInitialData.
func initialDataDescription(page string) string {
	start := jsonAssignment(page, "ytInitialData")
	if start < 0 {
		return ""
	}
	m := ytDataDescriptionRe.FindStringSubmatch(page[start:])
	if m == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &s); err != nil {
		return ""
	}
	return s
}

// jsonAssignment returns the offset of the '{' that starts the value
// assigned to name in an inline script, or -1.
func jsonAssignment(page, name string) int {
	for offset := 0; offset < len(page); {
		i := strings.Index(page[offset:], name)
		if i < 0 {
			return -1
		}
		after := offset + i + len(name)
		rest := strings.TrimLeft(page[after:], " \t")
		if strings.HasPrefix(rest, "=") {
			value := strings.TrimLeft(rest[1:], " \t\r\n")
			if strings.HasPrefix(value, "{") {
				return len(page) - len(value)
			}
		}
		offset = after
	}
	return -1
}

// thumbnails returns the oEmbed thumbnail and CDN frame candidates that
// actually resolve, at most maxThumbnails.
func (f *YouTubeFetcher) thumbnails(ctx context.Context, videoID, oembedThumb string) []string {
	var candidates []string
	candidates = appendUnique(candidates, oembedThumb)
	for _, name := range []string{"hqdefault", "1", "2", "3"} {
		candidates = appendUnique(candidates, fmt.Sprintf("%s/vi/%s/%s.jpg", youTubeThumbHost, videoID, name))
	}

	var kept []string
	for _, c := range candidates {
		if len(kept) == maxThumbnails {
			break
		}
		if f.web.Exists(ctx, c) {
			kept = append(kept, c)
		} else {
			f.logger.Debug("thumbnail candidate rejected", zap.String("url", c))
		}
	}
	return kept
}
