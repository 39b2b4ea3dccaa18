// Package extract turns a recipe URL into a normalized recipe through a
// cascade of platform fetchers, language-model extractors and a
// structured recipe API.
package extract

import (
	"regexp"
	"strings"
)

// Platform is the kind of source a URL points to.
type Platform string

const (
	PlatformYouTube   Platform = "YouTube"
	PlatformTikTok    Platform = "TikTok"
	PlatformInstagram Platform = "Instagram"
	PlatformGeneric   Platform = "Generic"
)

// IsVideo reports whether the platform is handled by the video path.
func (p Platform) IsVideo() bool {
	return p == PlatformYouTube || p == PlatformTikTok || p == PlatformInstagram
}

// Target is the classification of a URL.
type Target struct {
	Platform Platform
	// VideoID is set for YouTube only.
	VideoID string
}

var (
	youTubePatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	}
	instagramPostRe = regexp.MustCompile(`instagram\.com/(?:p|reel|reels)/`)
)

// Classify decides which extraction path a URL takes. It never touches
// the network.
func Classify(rawURL string) Target {
	for _, re := range youTubePatterns {
		if m := re.FindStringSubmatch(rawURL); m != nil {
			return Target{Platform: PlatformYouTube, VideoID: m[1]}
		}
	}
	if strings.Contains(rawURL, "tiktok.com") {
		return Target{Platform: PlatformTikTok}
	}
	if instagramPostRe.MatchString(rawURL) {
		return Target{Platform: PlatformInstagram}
	}
	return Target{Platform: PlatformGeneric}
}
