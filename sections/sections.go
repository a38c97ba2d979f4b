// Package sections fills the listing containers of a page shell. Every
// renderer is gated on its container id and is a no-op on pages without it.
package sections

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/dom"
	"github.com/khanhhoang/homepage/views"
)

// Container ids.
const (
	HomeWriting  = "home-writing"
	HomeBooks    = "home-books"
	WritingList  = "writing-list"
	BooksList    = "books-list"
	HomeProjects = "home-projects"
	ProjectsList = "projects-list"
	Experience   = "experience-list"
)

// FilterAttr marks the writing filter controls.
const FilterAttr = "data-writing-filter"

// Rescanner picks up reveal candidates added by a renderer.
type Rescanner interface {
	Rescan(doc *dom.Document)
}

// Renderer fills one container.
type Renderer func(ctx context.Context, doc *dom.Document, r Rescanner) error

// All returns the renderers in page order. filter is the requested writing
// filter and only matters on pages with filter controls.
func All(filter content.Filter) []Renderer {
	return []Renderer{
		RenderHomeWriting,
		RenderHomeBooks,
		func(ctx context.Context, doc *dom.Document, r Rescanner) error {
			return RenderWritingIndex(ctx, doc, filter, r)
		},
		RenderBooksIndex,
		RenderHomeProjects,
		RenderProjectsIndex,
		RenderExperience,
	}
}

// fill renders c into the container and rescans. A missing container is
// not an error.
func fill(ctx context.Context, doc *dom.Document, id string, c templ.Component, r Rescanner) error {
	el, ok := doc.ByID(id)
	if !ok {
		return nil
	}
	markup, err := views.ToString(ctx, c)
	if err != nil {
		return fmt.Errorf("sections: render #%s: %w", id, err)
	}
	if err := el.SetInnerHTML(markup); err != nil {
		return fmt.Errorf("sections: fill #%s: %w", id, err)
	}
	if r != nil {
		r.Rescan(doc)
	}
	return nil
}

// RenderHomeWriting shows the three newest posts.
func RenderHomeWriting(ctx context.Context, doc *dom.Document, r Rescanner) error {
	latest := content.Take(content.Select(content.FilterPost), 3)
	return fill(ctx, doc, HomeWriting, views.WritingList(latest), r)
}

// RenderHomeBooks shows the two newest reviews.
func RenderHomeBooks(ctx context.Context, doc *dom.Document, r Rescanner) error {
	latest := content.Take(content.Select(content.FilterReview), 2)
	return fill(ctx, doc, HomeBooks, views.WritingList(latest), r)
}

// RenderWritingIndex fills the writing archive. Without filter controls it
// lists posts only. With controls it lists the requested filter and marks
// the matching control as selected.
func RenderWritingIndex(ctx context.Context, doc *dom.Document, filter content.Filter, r Rescanner) error {
	if _, ok := doc.ByID(WritingList); !ok {
		return nil
	}
	controls := doc.WithAttr(FilterAttr)
	if len(controls) == 0 {
		return fill(ctx, doc, WritingList, views.WritingList(content.Select(content.FilterPost)), r)
	}
	SelectControl(controls, filter)
	return fill(ctx, doc, WritingList, views.WritingList(content.Select(filter)), r)
}

// SelectControl activates the control for filter and deselects the rest.
// When no control matches, the "all" control is selected.
func SelectControl(controls []*dom.Element, filter content.Filter) {
	target := string(filter)
	found := false
	for _, c := range controls {
		if v, _ := c.Attr(FilterAttr); v == target {
			found = true
			break
		}
	}
	if !found {
		target = string(content.FilterAll)
	}
	for _, c := range controls {
		v, _ := c.Attr(FilterAttr)
		on := v == target
		c.ToggleClass("is-active", on)
		if on {
			c.SetAttr("aria-selected", "true")
		} else {
			c.SetAttr("aria-selected", "false")
		}
	}
}

// RenderBooksIndex lists every review, newest first.
func RenderBooksIndex(ctx context.Context, doc *dom.Document, r Rescanner) error {
	return fill(ctx, doc, BooksList, views.WritingList(content.Select(content.FilterReview)), r)
}

// RenderHomeProjects teases the first two projects.
func RenderHomeProjects(ctx context.Context, doc *dom.Document, r Rescanner) error {
	return fill(ctx, doc, HomeProjects, views.ProjectList(content.Take(content.Projects(), 2), views.ViewProject), r)
}

// RenderProjectsIndex lists every project.
func RenderProjectsIndex(ctx context.Context, doc *dom.Document, r Rescanner) error {
	return fill(ctx, doc, ProjectsList, views.ProjectList(content.Projects(), views.OpenProject), r)
}

// RenderExperience fills the CV timeline in declared order.
func RenderExperience(ctx context.Context, doc *dom.Document, r Rescanner) error {
	return fill(ctx, doc, Experience, views.ExperienceList(content.Experience()), r)
}

// WritingFragment is the writing list alone, for htmx swaps.
func WritingFragment(filter content.Filter) templ.Component {
	return views.WritingList(content.Select(filter))
}
