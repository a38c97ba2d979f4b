// Package giscus embeds the giscus comment widget and keeps its theme in
// step with the page.
package giscus

import (
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/theme"
)

const (
	// TargetOrigin is the only origin theme messages are posted to.
	TargetOrigin = "https://giscus.app"
	// ScriptSrc is the widget loader.
	ScriptSrc = TargetOrigin + "/client.js"

	// MountAttr marks the element the widget is injected into.
	MountAttr = "data-comments"

	LightTheme = "light"
	DarkTheme  = "dark_dimmed"
)

// Config identifies the discussion backing the comments.
type Config struct {
	Repo       string `koanf:"repo"`
	RepoID     string `koanf:"repo_id"`
	Category   string `koanf:"category"`
	CategoryID string `koanf:"category_id"`
	Mapping    string `koanf:"mapping"`
	Lang       string `koanf:"lang"`
}

// Complete reports whether the config names a repository and category.
func (c Config) Complete() bool {
	return c.Repo != "" && c.RepoID != "" && c.Category != "" && c.CategoryID != ""
}

func (c Config) withDefaults() Config {
	if c.Mapping == "" {
		c.Mapping = "pathname"
	}
	if c.Lang == "" {
		c.Lang = "en"
	}
	return c
}

// ThemeFor maps a resolved page theme to the widget's theme name.
func ThemeFor(r theme.Resolved) string {
	if r == theme.ResolvedDark {
		return DarkTheme
	}
	return LightTheme
}

// Embed injects the loader script into the page's mount point. It returns
// false when the page has no mount or the config is incomplete.
func Embed(doc *dom.Document, cfg Config, r theme.Resolved) bool {
	mount, ok := doc.FirstWithAttr(MountAttr)
	if !ok || !cfg.Complete() {
		return false
	}
	cfg = cfg.withDefaults()

	script := dom.NewElement("script")
	for _, kv := range [][2]string{
		{"src", ScriptSrc},
		{"data-repo", cfg.Repo},
		{"data-repo-id", cfg.RepoID},
		{"data-category", cfg.Category},
		{"data-category-id", cfg.CategoryID},
		{"data-mapping", cfg.Mapping},
		{"data-strict", "0"},
		{"data-reactions-enabled", "1"},
		{"data-emit-metadata", "0"},
		{"data-input-position", "bottom"},
		{"data-lang", cfg.Lang},
		{"data-theme", ThemeFor(r)},
		{"crossorigin", "anonymous"},
		{"async", ""},
	} {
		script.SetAttr(kv[0], kv[1])
	}
	_ = mount.SetInnerHTML("")
	mount.Append(script)
	return true
}
