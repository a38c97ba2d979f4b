package site

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/giscus"
	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/theme"
)

const page = `<!doctype html><html lang="en"><head><title>placeholder</title></head><body>
<div data-scroll-progress></div>
<nav><a data-nav href="/">Home</a><a data-nav href="/writing.html">Writing</a></nav>
<button data-theme-toggle></button>
<img data-avatar src="/public/avatar.jpg"><button data-avatar-toggle></button><p data-avatar-caption></p>
<section class="reveal"><div id="home-writing"></div></section>
<div data-comments></div>
<a href="https://github.com/khanh">GitHub</a>
<footer>&copy; <span data-year></span></footer>
</body></html>`

var origin, _ = url.Parse("https://khanh.example")

var comments = giscus.Config{Repo: "khanh/site", RepoID: "R1", Category: "Comments", CategoryID: "C1"}

// noWait fails any test that would make the syncer sleep.
type noWait struct{ t *testing.T }

func (c noWait) After(time.Duration) <-chan time.Time {
	c.t.Helper()
	c.t.Fatal("syncer waited")
	return nil
}

func newSession(t *testing.T, store prefs.Store, sig Signals) *Session {
	t.Helper()
	return New(Config{
		Origin:   origin,
		Comments: comments,
		Syncer:   &giscus.Syncer{Attempts: 3, Interval: time.Second, Clock: noWait{t}},
		Now:      func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) },
	}, store, sig)
}

func hydrate(t *testing.T, s *Session, path string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Hydrate(context.Background(), doc, path, content.FilterAll); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	return doc
}

func TestHydrateHomePage(t *testing.T) {
	store := prefs.NewMemory()
	doc := hydrate(t, newSession(t, store, Signals{PrefersDark: true}), "/")

	if doc.Title() != content.DefaultMeta.Title {
		t.Errorf("title = %q", doc.Title())
	}
	if year, _ := doc.FirstWithAttr("data-year"); year.Text() != "2026" {
		t.Errorf("year = %q", year.Text())
	}
	if v, _ := doc.Root().Attr("data-theme"); v != "dark" {
		t.Errorf("data-theme = %q", v)
	}
	script, ok := doc.First(func(e *dom.Element) bool { return e.Tag() == "script" })
	if !ok {
		t.Fatal("comments not embedded")
	}
	if v, _ := script.Attr("data-theme"); v != giscus.DarkTheme {
		t.Errorf("widget theme = %q", v)
	}
	if _, ok := store.Get(prefs.KeyTheme); ok {
		t.Error("hydrate persisted the theme")
	}
	gh, _ := doc.First(func(e *dom.Element) bool {
		href, _ := e.Attr("href")
		return href == "https://github.com/khanh"
	})
	if v, _ := gh.Attr("rel"); v != "noopener noreferrer" {
		t.Errorf("external link rel = %q", v)
	}
	home, _ := doc.First(func(e *dom.Element) bool {
		href, _ := e.Attr("href")
		_, isNav := e.Attr("data-nav")
		return isNav && href == "/"
	})
	if !home.HasClass("is-active") {
		t.Error("home nav link not active")
	}
	list, _ := doc.ByID("home-writing")
	cards := list.Descendants(func(e *dom.Element) bool { return e.HasClass("card") })
	if len(cards) != 3 {
		t.Fatalf("cards = %d, want 3", len(cards))
	}
	for _, c := range cards {
		if _, ok := c.Attr("data-reveal-threshold"); !ok {
			t.Error("rendered card not observed")
		}
	}
}

func TestHydrateReducedMotion(t *testing.T) {
	s := newSession(t, prefs.NewMemory(), Signals{ReducedMotion: true})
	doc := hydrate(t, s, "/")
	for _, el := range doc.WithClass("reveal") {
		if !el.HasClass("is-visible") {
			t.Errorf("<%s> pending under reduced motion", el.Tag())
		}
	}
	if s.Reveal.Watching() != 0 {
		t.Errorf("watching = %d", s.Reveal.Watching())
	}
}

func TestHydrateWithoutCommentsNeverWaits(t *testing.T) {
	s := newSession(t, prefs.NewMemory(), Signals{})
	doc, err := dom.ParseString(strings.Replace(page, `<div data-comments></div>`, "", 1))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Hydrate(context.Background(), doc, "/writing.html", content.FilterAll); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Theme.Cycle(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
}

func TestToggleThenSystemFlip(t *testing.T) {
	store := prefs.NewMemory()
	_ = store.Set(prefs.KeyTheme, "system")
	s := newSession(t, store, Signals{PrefersDark: false})
	doc := hydrate(t, s, "/")
	ctx := context.Background()

	// system -> light
	if p, err := s.Theme.Cycle(ctx, doc); err != nil || p != theme.Light {
		t.Fatalf("Cycle = %v, %v", p, err)
	}
	// light -> dark
	if _, err := s.Theme.Cycle(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if err := s.Theme.SystemChanged(ctx, doc, true); err != nil {
		t.Fatal(err)
	}
	if err := s.Theme.SystemChanged(ctx, doc, false); err != nil {
		t.Fatal(err)
	}
	if v, _ := doc.Root().Attr("data-theme"); v != "dark" {
		t.Errorf("data-theme = %q, want dark", v)
	}
	if v, _ := store.Get(prefs.KeyTheme); v != "dark" {
		t.Errorf("stored = %q", v)
	}
}

func TestAvatarBlur(t *testing.T) {
	store := prefs.NewMemory()
	s := newSession(t, store, Signals{})
	doc := hydrate(t, s, "/")

	avatar, _ := doc.FirstWithAttr("data-avatar")
	toggle, _ := doc.FirstWithAttr("data-avatar-toggle")
	caption, _ := doc.FirstWithAttr("data-avatar-caption")
	if !avatar.HasClass("is-blurred") {
		t.Error("avatar should default to blurred")
	}
	if v, _ := toggle.Attr("aria-pressed"); v != "true" {
		t.Errorf("aria-pressed = %q", v)
	}
	if caption.Text() != CaptionBlurred {
		t.Errorf("caption = %q", caption.Text())
	}

	blurred, err := s.ToggleAvatar(doc)
	if err != nil || blurred {
		t.Fatalf("ToggleAvatar = %v, %v", blurred, err)
	}
	if avatar.HasClass("is-blurred") || caption.Text() != CaptionRevealed {
		t.Error("avatar not revealed")
	}
	if v, _ := store.Get(prefs.KeyAvatarBlur); v != "false" {
		t.Errorf("stored = %q", v)
	}
}

type failingStore struct{ prefs.Store }

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestToggleAvatarPersistError(t *testing.T) {
	s := newSession(t, failingStore{prefs.NewMemory()}, Signals{})
	doc := hydrate(t, s, "/")
	blurred, err := s.ToggleAvatar(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !blurred {
		t.Error("failed toggle should keep the stored state")
	}
}

func TestSignalsFromRequest(t *testing.T) {
	tests := []struct {
		scheme, motion string
		want           Signals
	}{
		{"", "", Signals{}},
		{`"dark"`, "", Signals{PrefersDark: true}},
		{"light", `"reduce"`, Signals{ReducedMotion: true}},
		{"Dark", "no-preference", Signals{PrefersDark: true}},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.scheme != "" {
			r.Header.Set(HintColorScheme, tt.scheme)
		}
		if tt.motion != "" {
			r.Header.Set(HintReducedMotion, tt.motion)
		}
		if got := SignalsFromRequest(r); got != tt.want {
			t.Errorf("SignalsFromRequest(%q, %q) = %+v, want %+v", tt.scheme, tt.motion, got, tt.want)
		}
	}
}
