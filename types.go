package homepage

import (
	"path"
	"sort"
	"strings"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/nav"
	"github.com/khanhhoang/homepage/shells"
)

// Page is one routable page of the site.
type Page struct {
	Path    string // normalized URL path, e.g. "/writing.html"
	Shell   string // shell file inside the shells FS
	Article string // Markdown body for detail pages, empty otherwise
}

// Detail reports whether the page renders an article body.
func (p Page) Detail() bool {
	return p.Article != ""
}

// OutputName is the file the page is written to in a build.
func (p Page) OutputName() string {
	if p.Path == "/" {
		return "index.html"
	}
	return strings.TrimPrefix(p.Path, "/")
}

// Entry returns the writing entry the page renders, if any.
func (p Page) Entry() (content.WritingEntry, bool) {
	for _, e := range content.Writing() {
		if !e.IsDraft() && e.URL == p.Path {
			return e, true
		}
	}
	return content.WritingEntry{}, false
}

// Pages lists every page in the metadata table, sorted by path.
func Pages() []Page {
	paths := make([]string, 0, len(content.PageMeta))
	for p := range content.PageMeta {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	pages := make([]Page, 0, len(paths))
	for _, p := range paths {
		pages = append(pages, pageFor(p))
	}
	return pages
}

// LookupPage resolves a request path to a page.
func LookupPage(urlPath string) (Page, bool) {
	p := nav.Normalize(urlPath)
	if p == "/index.html" {
		p = "/"
	}
	if _, ok := content.PageMeta[p]; !ok {
		return Page{}, false
	}
	return pageFor(p), true
}

func pageFor(p string) Page {
	page := Page{Path: p}
	page.Shell = path.Join(shells.PagesDir, page.OutputName())
	if strings.HasPrefix(p, "/posts/") || strings.HasPrefix(p, "/reviews/") {
		slug := strings.TrimSuffix(path.Base(p), ".html")
		page.Article = path.Join(shells.ArticlesDir, slug+".md")
	}
	return page
}

// Error shells.
var (
	notFoundShell    = path.Join(shells.PagesDir, "404.html")
	serverErrorShell = path.Join(shells.PagesDir, "500.html")
)
