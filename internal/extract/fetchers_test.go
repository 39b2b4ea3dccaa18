package extract

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantryfy/internal/platform/web/webtest"
)

const watchPage = `<html><head><title>Pasta - YouTube</title>
<meta property="og:description" content="2 cups pasta, 1 tbsp olive oil">
</head><body>
<script>var ytInitialPlayerResponse = {"videoDetails":{"title":"Pasta Night","shortDescription":"Full recipe: 2 cups pasta, 1 tbsp olive oil, salt to taste"}};var meta = {"a":1};</script>
</body></html>`

func youTubeRoutes(t *testing.T, transport *webtest.Transport, oembed, page string) {
	t.Helper()
	transport.HandleFunc("www.youtube.com", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oembed":
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			assert.Equal(t, "https://www.youtube.com/watch?v=abc12345678", r.URL.Query().Get("url"))
			if oembed == "" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(oembed))
		case "/watch":
			if page == "" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte(page))
		default:
			http.NotFound(w, r)
		}
	})
}

func TestYouTubeFetcher(t *testing.T) {
	transport := webtest.NewTransport()
	youTubeRoutes(t, transport,
		`{"title":"Pasta","thumbnail_url":"https://i.ytimg.com/vi/abc12345678/hqdefault.jpg"}`, watchPage)
	transport.HandleFunc("i.ytimg.com", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/hqdefault.jpg") || strings.HasSuffix(r.URL.Path, "/2.jpg") {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	f := NewYouTubeFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "https://youtu.be/abc12345678", Classify("https://youtu.be/abc12345678"))

	assert.Equal(t, "Pasta", got.Title)
	assert.Equal(t, "Full recipe: 2 cups pasta, 1 tbsp olive oil, salt to taste", got.Description)
	assert.Equal(t, []string{
		"https://i.ytimg.com/vi/abc12345678/hqdefault.jpg",
		"https://i.ytimg.com/vi/abc12345678/2.jpg",
	}, got.Thumbnails)
	// The oEmbed thumbnail equals the first CDN candidate and is checked once.
	assert.Equal(t, 1, transport.Count("HEAD i.ytimg.com/vi/abc12345678/hqdefault.jpg"))
}

func TestYouTubeFetcher_PageFallbacks(t *testing.T) {
	page := `<html><head><title>Quick Curry - YouTube</title></head><body>
<script>var ytInitialData = {"contents":{"description":{"simpleText":"Curry:\n2 onions\n\"lots\" of garlic"}}};</script>
</body></html>`

	transport := webtest.NewTransport()
	youTubeRoutes(t, transport, "", page)

	f := NewYouTubeFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "", Target{Platform: PlatformYouTube, VideoID: "abc12345678"})

	assert.Equal(t, "Quick Curry", got.Title)
	assert.Equal(t, "Curry:\n2 onions\n\"lots\" of garlic", got.Description)
	assert.Empty(t, got.Thumbnails)
}

func TestYouTubeFetcher_PlayerTitle(t *testing.T) {
	transport := webtest.NewTransport()
	youTubeRoutes(t, transport, "", watchPage)

	f := NewYouTubeFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "", Target{Platform: PlatformYouTube, VideoID: "abc12345678"})
	assert.Equal(t, "Pasta Night", got.Title)
}

func TestYouTubeFetcher_Unreachable(t *testing.T) {
	f := NewYouTubeFetcher(newWebClient(webtest.NewTransport()), nopLogger())
	got := f.Fetch(context.Background(), "", Target{Platform: PlatformYouTube, VideoID: "abc12345678"})
	assert.True(t, got.Empty())
}

func TestJSONAssignment(t *testing.T) {
	page := `window["ytInitialPlayerResponse"] = null; var ytInitialPlayerResponse = {"a":1};`
	start := jsonAssignment(page, "ytInitialPlayerResponse")
	require.GreaterOrEqual(t, start, 0)
	assert.True(t, strings.HasPrefix(page[start:], `{"a":1}`))

	assert.Equal(t, -1, jsonAssignment(`var ytInitialPlayerResponse = null;`, "ytInitialPlayerResponse"))
	assert.Equal(t, -1, jsonAssignment(`nothing here`, "ytInitialPlayerResponse"))
}

func TestTikTokFetcher_ShortCaptionReadsPage(t *testing.T) {
	transport := webtest.NewTransport()
	transport.HandleFunc("www.tiktok.com", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oembed" {
			assert.Equal(t, "https://www.tiktok.com/@chef/video/123", r.URL.Query().Get("url"))
			w.Write([]byte(`{"title":"easy pasta #food","thumbnail_url":"https://p16.tiktokcdn.com/t.jpg"}`))
			return
		}
		w.Write([]byte(`<html><head><meta property="og:description" content="easy pasta #food: 200g spaghetti, 2 cloves garlic, chili flakes"></head></html>`))
	})

	f := NewTikTokFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "https://www.tiktok.com/@chef/video/123", Target{Platform: PlatformTikTok})

	assert.Equal(t, "easy pasta #food", got.Title)
	assert.Equal(t, "easy pasta #food: 200g spaghetti, 2 cloves garlic, chili flakes", got.Description)
	assert.Equal(t, []string{"https://p16.tiktokcdn.com/t.jpg"}, got.Thumbnails)
}

func TestTikTokFetcher_LongCaptionSkipsPage(t *testing.T) {
	transport := webtest.NewTransport()
	transport.HandleFunc("www.tiktok.com", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Garlic noodles: 200g noodles, 4 cloves garlic, 2 tbsp butter"}`))
	})

	f := NewTikTokFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "https://www.tiktok.com/@chef/video/123", Target{Platform: PlatformTikTok})

	assert.Equal(t, got.Title, got.Description)
	assert.Equal(t, 1, transport.Count("GET www.tiktok.com"))
}

func TestInstagramFetcher_EmbedCaption(t *testing.T) {
	transport := webtest.NewTransport()
	transport.HandleFunc("www.instagram.com", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/p/Cabc123/embed/captioned/":
			w.Write([]byte(`<html><body>
<img class="EmbeddedMediaImage" src="https://scontent.cdninstagram.com/v/img.jpg">
<div class="Caption"><a class="CaptionUsername" href="#">chef</a><br>Lemon pasta<br>200g spaghetti<br>1 lemon
<div class="CaptionComments">View all 12 comments</div></div>
</body></html>`))
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	})

	f := NewInstagramFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "https://www.instagram.com/reel/Cabc123/", Target{Platform: PlatformInstagram})

	assert.Contains(t, got.Description, "Lemon pasta")
	assert.Contains(t, got.Description, "200g spaghetti")
	assert.NotContains(t, got.Description, "chef")
	assert.NotContains(t, got.Description, "comments")
	assert.Equal(t, []string{"https://scontent.cdninstagram.com/v/img.jpg"}, got.Thumbnails)
	// The post page is not needed once the embed had a caption.
	assert.Equal(t, 0, transport.Count("GET www.instagram.com/reel/"))
}

func TestInstagramFetcher_Blocked(t *testing.T) {
	transport := webtest.NewTransport()
	transport.HandleFunc("www.instagram.com", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	f := NewInstagramFetcher(newWebClient(transport), nopLogger())
	got := f.Fetch(context.Background(), "https://www.instagram.com/p/Cabc123/", Target{Platform: PlatformInstagram})

	assert.True(t, got.Empty())
	assert.Equal(t, 3, len(transport.Calls()))
}
