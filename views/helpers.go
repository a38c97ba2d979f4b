package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/khanhhoang/homepage/content"
)

// Eyebrow is the card label, e.g. "Post · 6 min".
func Eyebrow(e content.WritingEntry) string {
	return e.KindLabel() + " · " + e.ReadingTime
}

// StackLine joins a project stack for display.
func StackLine(stack []string) string {
	return strings.Join(stack, " · ")
}

// safeHref sanitizes and escapes a URL for use in an href attribute.
func safeHref(raw string) string {
	return templ.EscapeString(string(templ.URL(raw)))
}

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// AbsoluteURL resolves a site path against the configured base URL.
func AbsoluteURL(cfg SiteConfig, p string) string {
	return buildURL(cfg.URL, p)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a BlogPosting or Review block for a detail page.
func ArticleJsonLD(cfg SiteConfig, e content.WritingEntry) string {
	pageURL := buildURL(cfg.URL, e.URL)
	kind := "BlogPosting"
	if e.Kind == content.KindReview {
		kind = "Review"
	}
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         kind,
		"headline":      e.Title,
		"description":   e.Excerpt,
		"datePublished": e.Date,
		"url":           pageURL,
		"keywords":      e.Tag,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   pageURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
