package web

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var spaceRe = regexp.MustCompile(`\s+`)

// ParseHTML parses a page body.
func ParseHTML(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// Meta returns the content of meta[name=key] or meta[property=key].
func Meta(doc *goquery.Document, key string) string {
	if v, ok := doc.Find(fmt.Sprintf(`meta[name="%s"]`, key)).Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	if v, ok := doc.Find(fmt.Sprintf(`meta[property="%s"]`, key)).Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Title returns the text of the page's <title>.
func Title(doc *goquery.Document) string {
	return CollapseSpace(doc.Find("title").First().Text())
}

// RecipeJSONLD returns the first application/ld+json block that mentions a
// recipe, or "".
func RecipeJSONLD(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := strings.TrimSpace(s.Text())
		if strings.Contains(content, "Recipe") || strings.Contains(content, "recipe") {
			found = content
			return false
		}
		return true
	})
	return found
}

// VisibleText returns the page text without scripts, styles and page
// chrome, with whitespace collapsed. The document is modified.
func VisibleText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer, header").Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeText(n, &sb)
	}
	return CollapseSpace(sb.String())
}

// writeText separates text nodes with spaces so adjacent blocks do not run
// together.
func writeText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, sb)
	}
}

// CollapseSpace trims s and folds whitespace runs into single spaces.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
