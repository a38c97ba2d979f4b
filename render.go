package homepage

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/markdown"
	"github.com/khanhhoang/homepage/site"
	"github.com/khanhhoang/homepage/views"
)

var tracer = otel.Tracer("github.com/khanhhoang/homepage")

// Detail page anchors.
const (
	ArticleBodyAttr  = "data-article-body"
	ArticleTitleAttr = "data-article-title"
	ArticleDateAttr  = "data-article-date"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderDocument writes a hydrated document with a specific HTTP status code.
func RenderDocument(c echo.Context, code int, doc *dom.Document) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return doc.Render(c.Response().Writer)
}

// scratchDocument is a bare page for preference changes that render nothing.
func scratchDocument() *dom.Document {
	doc, _ := dom.ParseString("<!doctype html><html><head></head><body></body></html>")
	return doc
}

// RenderPath hydrates the page at urlPath. It returns ErrPageNotFound for
// paths outside the site.
func (a *App) RenderPath(ctx context.Context, urlPath string, sess *site.Session, filter content.Filter) (*dom.Document, error) {
	page, ok := LookupPage(urlPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, urlPath)
	}
	return a.Hydrate(ctx, page, sess, filter)
}

// Hydrate loads the page shell, fills in the article body and structured
// data, then runs the session's initializers.
func (a *App) Hydrate(ctx context.Context, page Page, sess *site.Session, filter content.Filter) (*dom.Document, error) {
	ctx, span := tracer.Start(ctx, "homepage.Hydrate")
	defer span.End()
	span.SetAttributes(attribute.String("page.path", page.Path))

	doc, err := a.Shells.Document(page.Shell)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cfg := a.viewConfig()
	setCanonical(doc, views.AbsoluteURL(cfg, page.Path))
	if page.Path == "/" {
		addJSONLD(doc, views.WebsiteJsonLD(cfg))
	}
	if page.Detail() {
		article, err := a.loadArticle(page)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if err := injectArticle(ctx, doc, article); err != nil {
			span.RecordError(err)
			return nil, err
		}
		entry := articleEntry(page, article)
		applyArticleHeader(doc, entry)
		addJSONLD(doc, views.ArticleJsonLD(cfg, entry))
	}

	if err := sess.Hydrate(ctx, doc, page.Path, filter); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("homepage: hydrate %s: %w", page.Path, err)
	}
	return doc, nil
}

func (a *App) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) loadArticle(page Page) (markdown.Article, error) {
	src, err := fs.ReadFile(a.shellFS, page.Article)
	if err != nil {
		return markdown.Article{}, fmt.Errorf("homepage: read article %s: %w", page.Article, err)
	}
	article, err := markdown.Parse(page.Article, src)
	if err != nil {
		return markdown.Article{}, fmt.Errorf("homepage: %w", err)
	}
	return article, nil
}

func injectArticle(ctx context.Context, doc *dom.Document, article markdown.Article) error {
	mount, ok := doc.FirstWithAttr(ArticleBodyAttr)
	if !ok {
		return nil
	}
	body, err := views.ToString(ctx, markdown.Markdown(article.Source))
	if err != nil {
		return fmt.Errorf("homepage: render article: %w", err)
	}
	if err := mount.SetInnerHTML(body); err != nil {
		return fmt.Errorf("homepage: %w", err)
	}
	return nil
}

// articleEntry describes a detail page. The article's front matter
// supplies the description and date; its title is used only when the
// page is missing from the writing collection.
func articleEntry(page Page, article markdown.Article) content.WritingEntry {
	e, ok := page.Entry()
	if !ok {
		e = content.WritingEntry{Title: article.Title, URL: page.Path, Kind: content.KindPost}
		if strings.HasPrefix(page.Path, "/reviews/") {
			e.Kind = content.KindReview
		}
	}
	if article.Description != "" {
		e.Excerpt = article.Description
	}
	if article.Date != "" {
		e.Date = article.Date
	}
	return e
}

// applyArticleHeader writes the entry's title and date into the article
// header anchors.
func applyArticleHeader(doc *dom.Document, e content.WritingEntry) {
	if title, ok := doc.FirstWithAttr(ArticleTitleAttr); ok && e.Title != "" {
		title.SetText(e.Title)
	}
	if date, ok := doc.FirstWithAttr(ArticleDateAttr); ok && e.Date != "" {
		date.SetAttr("datetime", e.Date)
		date.SetText(content.FormatDate(e.Date))
	}
}

func setCanonical(doc *dom.Document, href string) {
	head := doc.Head()
	if head == nil {
		return
	}
	link, ok := doc.First(func(e *dom.Element) bool {
		rel, _ := e.Attr("rel")
		return e.Tag() == "link" && rel == "canonical"
	})
	if !ok {
		link = dom.NewElement("link")
		link.SetAttr("rel", "canonical")
		head.Append(link)
	}
	link.SetAttr("href", href)
}

func addJSONLD(doc *dom.Document, data string) {
	head := doc.Head()
	if head == nil {
		return
	}
	script := dom.NewElement("script")
	script.SetAttr("type", "application/ld+json")
	script.SetText(data)
	head.Append(script)
}

// ErrorDocument hydrates an error shell for urlPath and titles it.
func (a *App) ErrorDocument(ctx context.Context, shell, title, urlPath string, sess *site.Session) (*dom.Document, error) {
	doc, err := a.Shells.Document(shell)
	if err != nil {
		return nil, err
	}
	if err := sess.Hydrate(ctx, doc, urlPath, content.FilterAll); err != nil {
		return doc, fmt.Errorf("homepage: hydrate %s: %w", shell, err)
	}
	doc.SetTitle(title + " | " + a.Config.Name)
	return doc, nil
}
