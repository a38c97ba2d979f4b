// Package theme resolves the visitor's tri-state theme preference into the
// light or dark theme applied to a page.
package theme

import (
	"context"
	"fmt"

	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/prefs"
)

// Preference is what the visitor asked for.
type Preference string

const (
	Light  Preference = "light"
	Dark   Preference = "dark"
	System Preference = "system"
)

// Resolved is the concrete theme applied to the document.
type Resolved string

const (
	ResolvedLight Resolved = "light"
	ResolvedDark  Resolved = "dark"
)

// Colors used for <meta name="theme-color">.
const (
	LightColor = "#f6f3ee"
	DarkColor  = "#121417"
)

// ParsePreference validates a stored or submitted value.
func ParsePreference(s string) (Preference, bool) {
	switch p := Preference(s); p {
	case Light, Dark, System:
		return p, true
	}
	return "", false
}

// LoadPreference reads the stored preference, falling back to System when
// it is absent or unrecognised.
func LoadPreference(s prefs.Store) Preference {
	v, ok := s.Get(prefs.KeyTheme)
	if !ok {
		return System
	}
	p, ok := ParsePreference(v)
	if !ok {
		return System
	}
	return p
}

// Resolve maps a preference to a theme. Light and dark pass through; system
// follows the OS dark-mode signal.
func Resolve(p Preference, prefersDark bool) Resolved {
	switch p {
	case Light:
		return ResolvedLight
	case Dark:
		return ResolvedDark
	}
	if prefersDark {
		return ResolvedDark
	}
	return ResolvedLight
}

// Next is the toggle order: light, dark, system, light.
func Next(p Preference) Preference {
	switch p {
	case Light:
		return Dark
	case Dark:
		return System
	default:
		return Light
	}
}

// Color returns the theme-color hex for a resolved theme.
func Color(r Resolved) string {
	if r == ResolvedDark {
		return DarkColor
	}
	return LightColor
}

// ToggleLabel is the accessible label of the toggle control.
func ToggleLabel(p Preference) string {
	return fmt.Sprintf("Theme: %s. Switch to %s.", p, Next(p))
}

// WidgetSync forwards a theme change to an embedded third-party widget.
// It is best effort; the result only reports whether the widget was reached.
type WidgetSync interface {
	SyncTheme(ctx context.Context, doc *dom.Document, r Resolved) bool
}

// Resolver holds the theme state for one UI session.
type Resolver struct {
	store       prefs.Store
	prefersDark bool
	current     Preference
	widget      WidgetSync
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithWidgetSync registers the widget notified after every change.
func WithWidgetSync(w WidgetSync) Option {
	return func(r *Resolver) {
		r.widget = w
	}
}

// NewResolver loads the current preference from store.
func NewResolver(store prefs.Store, prefersDark bool, opts ...Option) *Resolver {
	r := &Resolver{
		store:       store,
		prefersDark: prefersDark,
		current:     LoadPreference(store),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Current returns the active preference.
func (r *Resolver) Current() Preference {
	return r.current
}

// Resolved returns the theme the current preference resolves to right now.
func (r *Resolver) Resolved() Resolved {
	return Resolve(r.current, r.prefersDark)
}

// Init applies the loaded preference without persisting it.
func (r *Resolver) Init(ctx context.Context, doc *dom.Document) error {
	return r.Apply(ctx, doc, r.current, false)
}

// Apply makes p current and reflects the resolved theme on doc. The
// document is updated before the preference is persisted, so a failing
// store still leaves a consistent page.
func (r *Resolver) Apply(ctx context.Context, doc *dom.Document, p Preference, persist bool) error {
	r.current = p
	resolved := r.Resolved()

	if root := doc.Root(); root != nil {
		root.SetAttr("data-theme", string(resolved))
		root.SetStyle("color-scheme", string(resolved))
	}
	doc.EnsureMeta("theme-color").SetAttr("content", Color(resolved))

	label := ToggleLabel(p)
	for _, toggle := range doc.WithAttr("data-theme-toggle") {
		toggle.SetAttr("aria-label", label)
		toggle.SetAttr("title", label)
		toggle.SetAttr("data-theme-preference", string(p))
	}

	var err error
	if persist {
		if serr := r.store.Set(prefs.KeyTheme, string(p)); serr != nil {
			err = fmt.Errorf("theme: persist preference: %w", serr)
		}
	}
	if r.widget != nil {
		r.widget.SyncTheme(ctx, doc, resolved)
	}
	return err
}

// Cycle advances to the next preference and persists it.
func (r *Resolver) Cycle(ctx context.Context, doc *dom.Document) (Preference, error) {
	next := Next(r.current)
	return next, r.Apply(ctx, doc, next, true)
}

// SystemChanged records a new OS dark-mode signal. The page only follows
// it while the preference is System, and the preference is not persisted.
func (r *Resolver) SystemChanged(ctx context.Context, doc *dom.Document, prefersDark bool) error {
	r.prefersDark = prefersDark
	if r.current != System {
		return nil
	}
	return r.Apply(ctx, doc, System, false)
}
