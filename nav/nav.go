// Package nav handles path normalisation, active navigation state, page
// metadata and link hardening for hydrated pages.
package nav

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
)

// Normalize strips trailing slashes. The root path stays "/".
func Normalize(p string) string {
	if p == "/" {
		return "/"
	}
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" && p != "" {
		return "/"
	}
	return trimmed
}

// SamePage reports whether two paths name the same page.
func SamePage(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// MarkActive flags the [data-nav] links pointing at current and clears the
// flag on the rest. Hrefs are resolved against origin.
func MarkActive(doc *dom.Document, origin *url.URL, current string) {
	current = Normalize(current)
	for _, link := range doc.WithAttr("data-nav") {
		href, _ := link.Attr("href")
		target, err := origin.Parse(href)
		isCurrent := err == nil && Normalize(target.Path) == current
		link.ToggleClass("is-active", isCurrent)
		if isCurrent {
			link.SetAttr("aria-current", "page")
		} else {
			link.RemoveAttr("aria-current")
		}
	}
}

// ApplyMeta sets the document title and description for path, falling back
// to fallback when the table has no entry.
func ApplyMeta(doc *dom.Document, path string, table map[string]content.Meta, fallback content.Meta) content.Meta {
	meta, ok := table[Normalize(path)]
	if !ok {
		meta = fallback
	}
	doc.SetTitle(meta.Title)
	doc.EnsureMeta("description").SetAttr("content", meta.Description)
	return meta
}

// HardenExternalLinks makes links to other origins open in a new context
// without opener or referrer. Hrefs that fail to parse are left alone.
func HardenExternalLinks(doc *dom.Document, origin *url.URL) int {
	n := 0
	for _, a := range doc.ByTag("a") {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}
		u, err := url.Parse(href)
		if err != nil || !u.IsAbs() {
			continue
		}
		if sameOrigin(u, origin) {
			continue
		}
		a.SetAttr("target", "_blank")
		a.SetAttr("rel", "noopener noreferrer")
		n++
	}
	return n
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// SetYear fills the [data-year] placeholder.
func SetYear(doc *dom.Document, now time.Time) {
	if el, ok := doc.FirstWithAttr("data-year"); ok {
		el.SetText(strconv.Itoa(now.Year()))
	}
}

// PrimeScrollProgress resets the progress bar so it starts empty before the
// client script takes over.
func PrimeScrollProgress(doc *dom.Document) {
	if bar, ok := doc.FirstWithAttr("data-scroll-progress"); ok {
		bar.SetAttr("style", ScrollTransform(0))
	}
}

// ScrollProgress is the fraction of the page scrolled, clamped to [0, 1].
// It is zero when the page does not scroll.
func ScrollProgress(scrollY, scrollHeight, viewportHeight float64) float64 {
	scrollable := scrollHeight - viewportHeight
	if scrollable <= 0 {
		return 0
	}
	return min(1, max(0, scrollY/scrollable))
}

// ScrollTransform is the inline style applied to the progress bar.
func ScrollTransform(progress float64) string {
	return fmt.Sprintf("transform: scaleX(%s)", strconv.FormatFloat(progress, 'f', -1, 64))
}
