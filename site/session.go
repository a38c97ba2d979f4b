// Package site runs the page initializers for one UI session. A Session is
// created per request or per built page and owns all the state the
// initializers share.
package site

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/giscus"
	"github.com/khanhhoang/homepage/nav"
	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/reveal"
	"github.com/khanhhoang/homepage/sections"
	"github.com/khanhhoang/homepage/theme"
)

var tracer = otel.Tracer("github.com/khanhhoang/homepage/site")

// Avatar captions.
const (
	CaptionBlurred  = "Photo blurred. Tap to reveal."
	CaptionRevealed = "Photo visible. Tap to blur."
)

// Config is shared by every session of a site.
type Config struct {
	Origin   *url.URL
	Comments giscus.Config
	Syncer   *giscus.Syncer
	Watcher  reveal.Watcher
	Now      func() time.Time
}

// Session is the per-visit context object behind every initializer.
type Session struct {
	Theme  *theme.Resolver
	Reveal *reveal.Controller

	cfg       Config
	store     prefs.Store
	signals   Signals
	commented bool
	widget    theme.WidgetSync
}

// New creates a session reading preferences from store.
func New(cfg Config, store prefs.Store, sig Signals) *Session {
	if cfg.Origin == nil {
		cfg.Origin = &url.URL{Scheme: "http", Host: "localhost"}
	}
	if cfg.Syncer == nil {
		cfg.Syncer = giscus.NewSyncer()
	}
	if cfg.Watcher == nil {
		cfg.Watcher = reveal.MarkupWatcher{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{cfg: cfg, store: store, signals: sig}
	s.widget = giscus.ThemeSync{Syncer: cfg.Syncer}
	s.Theme = theme.NewResolver(store, sig.PrefersDark, theme.WithWidgetSync(s))
	s.Reveal = reveal.New(cfg.Watcher, sig.ReducedMotion)
	return s
}

// SyncTheme forwards to the comment widget only when this page embeds it.
func (s *Session) SyncTheme(ctx context.Context, doc *dom.Document, r theme.Resolved) bool {
	if !s.commented {
		return false
	}
	return s.widget.SyncTheme(ctx, doc, r)
}

// Hydrate runs every initializer against doc in page order.
func (s *Session) Hydrate(ctx context.Context, doc *dom.Document, path string, filter content.Filter) error {
	ctx, span := tracer.Start(ctx, "site.Hydrate")
	defer span.End()
	span.SetAttributes(attribute.String("page.path", path))

	nav.SetYear(doc, s.cfg.Now())
	nav.MarkActive(doc, s.cfg.Origin, path)
	nav.ApplyMeta(doc, path, content.PageMeta, content.DefaultMeta)
	nav.PrimeScrollProgress(doc)
	s.commented = giscus.Embed(doc, s.cfg.Comments, s.Theme.Resolved())
	if err := s.Theme.Init(ctx, doc); err != nil {
		return fmt.Errorf("site: theme: %w", err)
	}
	s.ApplyAvatar(doc)
	s.Reveal.Init(doc)
	for _, render := range sections.All(filter) {
		if err := render(ctx, doc, s.Reveal); err != nil {
			span.RecordError(err)
			return fmt.Errorf("site: %w", err)
		}
	}
	nav.HardenExternalLinks(doc, s.cfg.Origin)
	return nil
}

// ApplyAvatar reflects the blur preference on the avatar anchors.
func (s *Session) ApplyAvatar(doc *dom.Document) bool {
	blurred := prefs.AvatarBlur(s.store)
	if avatar, ok := doc.FirstWithAttr("data-avatar"); ok {
		avatar.ToggleClass("is-blurred", blurred)
	}
	for _, toggle := range doc.WithAttr("data-avatar-toggle") {
		toggle.SetAttr("aria-pressed", strconv.FormatBool(blurred))
	}
	if caption, ok := doc.FirstWithAttr("data-avatar-caption"); ok {
		if blurred {
			caption.SetText(CaptionBlurred)
		} else {
			caption.SetText(CaptionRevealed)
		}
	}
	return blurred
}

// ToggleAvatar flips and persists the blur preference, then re-applies it.
func (s *Session) ToggleAvatar(doc *dom.Document) (bool, error) {
	next := !prefs.AvatarBlur(s.store)
	if err := prefs.SetAvatarBlur(s.store, next); err != nil {
		return prefs.AvatarBlur(s.store), fmt.Errorf("site: persist avatar blur: %w", err)
	}
	return s.ApplyAvatar(doc), nil
}
