package homepage

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/nav"
	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/sections"
	"github.com/khanhhoang/homepage/site"
	"github.com/khanhhoang/homepage/theme"
)

// ErrPageNotFound is returned when a path names no page of the site.
var ErrPageNotFound = errors.New("homepage: page not found")

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// prefStore opens the visitor's preference cookie. A cookie that cannot be
// decoded is treated as empty.
func (a *App) prefStore(c echo.Context) prefs.Store {
	s, err := prefs.FromContext(c)
	if err != nil {
		c.Logger().Warnf("preference session: %v", err)
		return prefs.NewMemory()
	}
	return s
}

func (a *App) session(c echo.Context) *site.Session {
	return a.Session(a.prefStore(c), site.SignalsFromRequest(c.Request()))
}

func (a *App) handlePage(c echo.Context) error {
	return a.servePage(c, c.Request().URL.Path, content.FilterAll)
}

func (a *App) handleWriting(c echo.Context) error {
	filter := content.ParseFilter(c.QueryParam("filter"))
	if isHTMX(c) {
		return Render(c, sections.WritingFragment(filter))
	}
	return a.servePage(c, "/writing.html", filter)
}

func (a *App) handleWritingFragment(c echo.Context) error {
	raw := strings.TrimSuffix(c.Param("filter"), ".html")
	filter := content.ParseFilter(raw)
	if string(filter) != raw {
		return echo.ErrNotFound
	}
	return Render(c, sections.WritingFragment(filter))
}

func (a *App) servePage(c echo.Context, urlPath string, filter content.Filter) error {
	doc, err := a.RenderPath(c.Request().Context(), urlPath, a.session(c), filter)
	if err != nil {
		return err
	}
	a.decorate(c, doc)
	return RenderDocument(c, http.StatusOK, doc)
}

// decorate adds the request-only anchors the client script looks for.
func (a *App) decorate(c echo.Context, doc *dom.Document) {
	if token := CsrfToken(c); token != "" {
		doc.EnsureMeta("csrf-token").SetAttr("content", token)
	}
	if a.reloader != nil {
		doc.EnsureMeta("livereload").SetAttr("content", LiveReloadPath)
	}
}

func handleIndexRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

// handleTheme cycles the theme, or sets the posted preference. The
// resolved theme is sent back in a header for the client script.
func (a *App) handleTheme(c echo.Context) error {
	sess := a.session(c)
	doc := scratchDocument()
	ctx := c.Request().Context()
	var err error
	var pref theme.Preference
	if raw := c.FormValue("preference"); raw != "" {
		p, ok := theme.ParsePreference(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown theme preference")
		}
		pref = p
		err = sess.Theme.Apply(ctx, doc, p, true)
	} else {
		pref, err = sess.Theme.Cycle(ctx, doc)
	}
	if err != nil {
		return err
	}
	c.Response().Header().Set("X-Theme-Preference", string(pref))
	c.Response().Header().Set("X-Theme-Resolved", string(sess.Theme.Resolved()))
	return a.afterPreference(c)
}

// handleAvatarBlur toggles the avatar blur, or sets the posted value.
func (a *App) handleAvatarBlur(c echo.Context) error {
	store := a.prefStore(c)
	var blurred bool
	if raw := c.FormValue("enabled"); raw != "" {
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "enabled must be a boolean")
		}
		if err := prefs.SetAvatarBlur(store, on); err != nil {
			return err
		}
		blurred = on
	} else {
		sess := a.Session(store, site.SignalsFromRequest(c.Request()))
		var err error
		if blurred, err = sess.ToggleAvatar(scratchDocument()); err != nil {
			return err
		}
	}
	c.Response().Header().Set("X-Avatar-Blur", strconv.FormatBool(blurred))
	return a.afterPreference(c)
}

// afterPreference answers scripted requests with 204 and sends plain form
// posts back to the page they came from.
func (a *App) afterPreference(c echo.Context) error {
	if isHTMX(c) {
		return c.NoContent(http.StatusNoContent)
	}
	back := "/"
	if ref, err := a.origin.Parse(c.Request().Referer()); err == nil && ref.Host == a.origin.Host && ref.Path != "" {
		back = nav.Normalize(ref.Path)
	}
	return c.Redirect(http.StatusSeeOther, back)
}

func (a *App) handleSitemap(c echo.Context) error {
	body, err := a.SitemapXML()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (a *App) handleFeed(c echo.Context) error {
	body, err := a.FeedXML()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.RobotsTxt())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if (ok && he.Code == http.StatusNotFound) || errors.Is(err, ErrPageNotFound) {
		a.renderErrorShell(c, http.StatusNotFound, notFoundShell, "Page not found")
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		a.renderErrorShell(c, code, serverErrorShell, "Something went wrong")
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func (a *App) renderErrorShell(c echo.Context, code int, shell, title string) {
	doc, err := a.ErrorDocument(c.Request().Context(), shell, title, c.Request().URL.Path, a.session(c))
	if doc == nil {
		c.Logger().Errorf("error shell %s: %v", shell, err)
		_ = c.String(code, http.StatusText(code))
		return
	}
	if err != nil {
		c.Logger().Errorf("%v", err)
	}
	_ = RenderDocument(c, code, doc)
}
