package homepage

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/site"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := SiteConfig{
		URL:           "https://example.com",
		SessionSecret: "test-session-secret",
		OutDir:        filepath.Join(dir, "dist"),
		StaticDir:     filepath.Join(dir, "public"),
		ManifestPath:  filepath.Join(dir, "data", "manifest.db"),
	}
	a, err := New(cfg, WithNow(fixedNow))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func doRequest(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return doRequest(a, req)
}

func TestHomePage(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`name="csrf-token"`,
		"Building Quiet Systems",
		"Atomic Habits: What Actually Stuck",
		"Handbook Search",
		"2026",
		`rel="canonical"`,
		"application/ld+json",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if got := rec.Header().Get("Accept-CH"); got != site.AcceptCH {
		t.Errorf("expected Accept-CH %q, got %q", site.AcceptCH, got)
	}
}

func TestColorSchemeHint(t *testing.T) {
	a := newTestApp(t)

	rec := get(a, "/", map[string]string{site.HintColorScheme: `"dark"`})
	if !strings.Contains(rec.Body.String(), `data-theme="dark"`) {
		t.Fatalf("expected dark theme from client hint")
	}
	rec = get(a, "/", nil)
	if !strings.Contains(rec.Body.String(), `data-theme="light"`) {
		t.Fatalf("expected light theme without hint")
	}
}

func TestIndexRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/index.html", nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestDetailPage(t *testing.T) {
	a := newTestApp(t)
	rec := get(a, "/posts/quiet-systems.html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Building Quiet Systems | ") {
		t.Errorf("expected page title from metadata")
	}
	if !strings.Contains(body, "BlogPosting") {
		t.Errorf("expected article structured data")
	}
}

func TestWritingFilter(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name    string
		target  string
		headers map[string]string
		code    int
		want    string
		notWant string
		partial bool
	}{
		{
			name:    "full page with filter",
			target:  "/writing.html?filter=review",
			code:    http.StatusOK,
			want:    "Atomic Habits",
			notWant: "Building Quiet Systems",
		},
		{
			name:    "htmx partial",
			target:  "/writing.html?filter=post",
			headers: map[string]string{"HX-Request": "true"},
			code:    http.StatusOK,
			want:    "Building Quiet Systems",
			notWant: "Atomic Habits",
			partial: true,
		},
		{
			name:    "unknown filter shows everything",
			target:  "/writing.html?filter=poems",
			headers: map[string]string{"HX-Request": "true"},
			code:    http.StatusOK,
			want:    "Atomic Habits",
			partial: true,
		},
		{
			name:    "fragment route",
			target:  "/fragments/writing-review.html",
			code:    http.StatusOK,
			want:    "Slow Productivity",
			notWant: "Deep Work Notes",
			partial: true,
		},
		{
			name:   "unknown fragment",
			target: "/fragments/writing-poems.html",
			code:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(a, tt.target, tt.headers)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			body := rec.Body.String()
			if tt.want != "" && !strings.Contains(body, tt.want) {
				t.Errorf("expected body to contain %q", tt.want)
			}
			if tt.notWant != "" && strings.Contains(body, tt.notWant) {
				t.Errorf("expected body not to contain %q", tt.notWant)
			}
			if tt.partial && strings.Contains(body, "<html") {
				t.Errorf("expected a fragment, got a full page")
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	a := newTestApp(t)
	for _, target := range []string{"/nope.html", "/posts/missing.html", "/a/b/c"} {
		rec := get(a, target, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Page not found") {
			t.Errorf("%s: expected the 404 shell", target)
		}
	}
}

// csrf fetches a page and returns the CSRF cookie and token.
func csrf(t *testing.T, a *App) (*http.Cookie, string) {
	t.Helper()
	rec := get(a, "/", nil)
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected a CSRF cookie")
	}
	return cookie, cookie.Value
}

func postPref(a *App, target string, form url.Values, cookies []*http.Cookie, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return doRequest(a, req)
}

func prefCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == prefs.SessionName {
			return c
		}
	}
	return nil
}

func TestThemePreferencePersists(t *testing.T) {
	a := newTestApp(t)
	csrfCookie, token := csrf(t, a)

	rec := postPref(a, "/theme", url.Values{"preference": {"dark"}}, []*http.Cookie{csrfCookie}, token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Theme-Preference"); got != "dark" {
		t.Errorf("expected preference dark, got %q", got)
	}
	if got := rec.Header().Get("X-Theme-Resolved"); got != "dark" {
		t.Errorf("expected resolved dark, got %q", got)
	}
	saved := prefCookie(rec)
	if saved == nil {
		t.Fatal("expected the preference cookie to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(saved)
	page := doRequest(a, req)
	if !strings.Contains(page.Body.String(), `data-theme="dark"`) {
		t.Fatalf("expected stored dark theme on the next page")
	}
}

func TestThemeCycle(t *testing.T) {
	a := newTestApp(t)
	csrfCookie, token := csrf(t, a)

	cookies := []*http.Cookie{csrfCookie}
	want := []string{"light", "dark", "system", "light"}
	for i, w := range want {
		rec := postPref(a, "/theme", url.Values{}, cookies, token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("step %d: expected 204, got %d", i, rec.Code)
		}
		if got := rec.Header().Get("X-Theme-Preference"); got != w {
			t.Fatalf("step %d: expected %q, got %q", i, w, got)
		}
		if c := prefCookie(rec); c != nil {
			cookies = []*http.Cookie{csrfCookie, c}
		}
	}
}

func TestThemeRejectsBadInput(t *testing.T) {
	a := newTestApp(t)
	csrfCookie, token := csrf(t, a)

	rec := postPref(a, "/theme", url.Values{"preference": {"sepia"}}, []*http.Cookie{csrfCookie}, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = postPref(a, "/theme", url.Values{"preference": {"dark"}}, nil, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a CSRF token, got %d", rec.Code)
	}
}

func TestAvatarBlurToggle(t *testing.T) {
	a := newTestApp(t)
	csrfCookie, token := csrf(t, a)

	rec := postPref(a, "/avatar-blur", url.Values{}, []*http.Cookie{csrfCookie}, token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Avatar-Blur"); got != "false" {
		t.Fatalf("expected blur off after first toggle, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(prefCookie(rec))
	body := doRequest(a, req).Body.String()
	if !strings.Contains(body, site.CaptionRevealed) {
		t.Fatalf("expected the revealed caption")
	}

	rec = postPref(a, "/avatar-blur", url.Values{"enabled": {"maybe"}}, []*http.Cookie{csrfCookie}, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-boolean, got %d", rec.Code)
	}
}

func TestPlainFormPostRedirects(t *testing.T) {
	a := newTestApp(t)
	csrfCookie, token := csrf(t, a)

	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader("preference=light"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", token)
	req.Header.Set("Referer", "https://example.com/books.html")
	req.AddCookie(csrfCookie)
	rec := doRequest(a, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/books.html" {
		t.Fatalf("expected redirect back to /books.html, got %q", loc)
	}
}

func TestFeedSitemapRobots(t *testing.T) {
	a := newTestApp(t)

	feed := get(a, "/feed.xml", nil).Body.String()
	if !strings.Contains(feed, "Building Quiet Systems") {
		t.Errorf("feed missing published post")
	}
	if strings.Contains(feed, "Learning in Public") || strings.Contains(feed, "Slow Productivity") {
		t.Errorf("feed should not list drafts")
	}

	sitemap := get(a, "/sitemap.xml", nil).Body.String()
	for _, want := range []string{
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/writing.html</loc>",
		"<loc>https://example.com/posts/quiet-systems.html</loc>",
		"<lastmod>2026-01-22</lastmod>",
	} {
		if !strings.Contains(sitemap, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	robots := get(a, "/robots.txt", nil).Body.String()
	if !strings.Contains(robots, "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt missing sitemap line: %q", robots)
	}
}

func TestEmbeddedAssetsServed(t *testing.T) {
	a := newTestApp(t)
	for _, target := range []string{"/public/site.js", "/public/styles.css"} {
		rec := get(a, target, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestSetupRequiresSecret(t *testing.T) {
	a, err := New(SiteConfig{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Setup(); err == nil {
		t.Fatal("expected an error without a session secret")
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New(SiteConfig{URL: "not a url"}); err == nil {
		t.Fatal("expected an error for a URL without a host")
	}
}
