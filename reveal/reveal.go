// Package reveal drives the one-way reveal-on-scroll entrance of page
// elements.
package reveal

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/khanhhoang/homepage/dom"
)

// Class names shared with the stylesheet and client script.
const (
	CandidateClass = "reveal"
	VisibleClass   = "is-visible"
)

// Watcher settings: reveal once a fifth of the element is in view, a little
// before it reaches the bottom edge.
const (
	Threshold  = 0.2
	RootMargin = "0px 0px -5% 0px"
)

// Attributes MarkupWatcher writes. The client script builds its observer
// from them.
const (
	ThresholdAttr = "data-reveal-threshold"
	MarginAttr    = "data-reveal-margin"
)

// Watcher observes elements for viewport intersection.
type Watcher interface {
	Observe(el *dom.Element)
	Unobserve(el *dom.Element)
}

// Controller owns the shared watcher for one page. An element moves from
// pending to visible exactly once.
type Controller struct {
	watcher       Watcher
	reducedMotion bool
	installed     bool
	watched       map[*html.Node]bool
}

// New returns a controller. With reducedMotion set, Init reveals everything
// immediately and nothing is ever observed.
func New(w Watcher, reducedMotion bool) *Controller {
	return &Controller{
		watcher:       w,
		reducedMotion: reducedMotion,
		watched:       make(map[*html.Node]bool),
	}
}

// Init prepares doc. It must run before Rescan has any effect.
func (c *Controller) Init(doc *dom.Document) {
	if c.reducedMotion {
		for _, el := range doc.WithClass(CandidateClass) {
			el.AddClass(VisibleClass)
		}
		return
	}
	c.installed = true
	c.Rescan(doc)
}

// Rescan registers every pending candidate that is not already watched.
// Renderers call it after inserting markup.
func (c *Controller) Rescan(doc *dom.Document) {
	if !c.installed {
		return
	}
	for _, el := range doc.WithClass(CandidateClass) {
		if el.HasClass(VisibleClass) || c.watched[el.Key()] {
			continue
		}
		c.watched[el.Key()] = true
		c.watcher.Observe(el)
	}
}

// Intersect is the watcher callback for an element entering the viewport.
func (c *Controller) Intersect(el *dom.Element) {
	el.AddClass(VisibleClass)
	if c.watched[el.Key()] {
		c.watcher.Unobserve(el)
		delete(c.watched, el.Key())
	}
}

// Watching reports how many elements are currently observed.
func (c *Controller) Watching() int {
	return len(c.watched)
}

// MarkupWatcher observes by annotating elements for the client script,
// which attaches a real IntersectionObserver with the same settings.
type MarkupWatcher struct{}

// Observe implements Watcher.
func (MarkupWatcher) Observe(el *dom.Element) {
	el.SetAttr(ThresholdAttr, strconv.FormatFloat(Threshold, 'f', -1, 64))
	el.SetAttr(MarginAttr, RootMargin)
}

// Unobserve implements Watcher.
func (MarkupWatcher) Unobserve(el *dom.Element) {
	el.RemoveAttr(ThresholdAttr)
	el.RemoveAttr(MarginAttr)
}
