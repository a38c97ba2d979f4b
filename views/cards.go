package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/khanhhoang/homepage/content"
)

// WritingCard renders a post or review card. Drafts get a note and no link.
func WritingCard(e content.WritingEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="card reveal">`)
		b.WriteString(`<p class="eyebrow">` + templ.EscapeString(Eyebrow(e)) + `</p>`)
		b.WriteString(`<h3>` + templ.EscapeString(e.Title) + `</h3>`)
		b.WriteString(`<p>` + templ.EscapeString(e.Excerpt) + `</p>`)
		b.WriteString(`<div class="meta-row">`)
		b.WriteString(`<span>` + templ.EscapeString(content.FormatDate(e.Date)) + `</span>`)
		b.WriteString(`<span>` + templ.EscapeString(e.Tag) + `</span>`)
		b.WriteString(`</div>`)
		if e.IsDraft() {
			b.WriteString(`<span class="inline-note">` + DraftNote + `</span>`)
		} else {
			b.WriteString(`<a href="` + safeHref(e.URL) + `">` + templ.EscapeString(e.LinkLabel()) + `</a>`)
		}
		b.WriteString(`</article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ProjectCard renders a portfolio card with the given call to action.
func ProjectCard(p content.ProjectEntry, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="card reveal">`)
		b.WriteString(`<p class="eyebrow">` + templ.EscapeString(p.Year) + `</p>`)
		b.WriteString(`<h3>` + templ.EscapeString(p.Name) + `</h3>`)
		b.WriteString(`<p>` + templ.EscapeString(p.Summary) + `</p>`)
		b.WriteString(`<p class="tag-list">` + templ.EscapeString(StackLine(p.Stack)) + `</p>`)
		b.WriteString(`<a href="` + safeHref(p.Link) + `">` + templ.EscapeString(label) + `</a>`)
		b.WriteString(`</article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ExperienceItem renders one CV timeline entry.
func ExperienceItem(x content.ExperienceEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<article class="timeline-item reveal"><header>`)
		b.WriteString(`<h3>` + templ.EscapeString(x.Role) + `</h3>`)
		b.WriteString(`<p class="meta-row"><span>` + templ.EscapeString(x.Company) + `</span>`)
		b.WriteString(`<span>` + templ.EscapeString(x.Period) + `</span></p>`)
		b.WriteString(`<p class="muted">` + templ.EscapeString(x.Location) + `</p>`)
		b.WriteString(`</header><ul>`)
		for _, h := range x.Highlights {
			b.WriteString(`<li>` + templ.EscapeString(h) + `</li>`)
		}
		b.WriteString(`</ul></article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// WritingList renders cards for entries in order.
func WritingList(entries []content.WritingEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, e := range entries {
			if err := WritingCard(e).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// ProjectList renders project cards in declared order.
func ProjectList(entries []content.ProjectEntry, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range entries {
			if err := ProjectCard(p, label).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExperienceList renders the timeline in declared order.
func ExperienceList(entries []content.ExperienceEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, x := range entries {
			if err := ExperienceItem(x).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// ToString renders c into a string.
func ToString(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
