// Package dom is a small document model over golang.org/x/net/html used to
// hydrate page shells. It exposes just the anchor lookups and mutations the
// page initializers need.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoContainer is returned by helpers that require an anchor which the
// current page does not expose.
var ErrNoContainer = errors.New("dom: container not found")

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Element is a handle to an element node. Two handles to the same node
// compare equal through Key.
type Element struct {
	n *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{root: n}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	el, _ := d.First(func(e *Element) bool { return e.n.DataAtom == atom.Html })
	return el
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	el, _ := d.First(func(e *Element) bool { return e.n.DataAtom == atom.Head })
	return el
}

// Find returns every element matching pred, in document order.
func (d *Document) Find(pred func(*Element) bool) []*Element {
	var out []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if el := (&Element{n: n}); pred(el) {
				out = append(out, el)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// First returns the first element matching pred.
func (d *Document) First(pred func(*Element) bool) (*Element, bool) {
	var found *Element
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if el := (&Element{n: n}); pred(el) {
				found = el
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(d.root)
	return found, found != nil
}

// ByID looks up an element by id. The boolean is false when the page does
// not expose the anchor.
func (d *Document) ByID(id string) (*Element, bool) {
	return d.First(func(e *Element) bool {
		v, ok := e.Attr("id")
		return ok && v == id
	})
}

// Container is ByID for callers that need the anchor to exist.
func (d *Document) Container(id string) (*Element, error) {
	el, ok := d.ByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrNoContainer, id)
	}
	return el, nil
}

// WithAttr returns every element carrying the attribute.
func (d *Document) WithAttr(name string) []*Element {
	return d.Find(func(e *Element) bool {
		_, ok := e.Attr(name)
		return ok
	})
}

// FirstWithAttr returns the first element carrying the attribute.
func (d *Document) FirstWithAttr(name string) (*Element, bool) {
	return d.First(func(e *Element) bool {
		_, ok := e.Attr(name)
		return ok
	})
}

// WithClass returns every element whose class list contains class.
func (d *Document) WithClass(class string) []*Element {
	return d.Find(func(e *Element) bool { return e.HasClass(class) })
}

// ByTag returns every element with the given tag name.
func (d *Document) ByTag(tag string) []*Element {
	a := atom.Lookup([]byte(tag))
	return d.Find(func(e *Element) bool {
		if a != 0 {
			return e.n.DataAtom == a
		}
		return e.n.Data == tag
	})
}

// MetaByName returns the <meta name=...> element.
func (d *Document) MetaByName(name string) (*Element, bool) {
	return d.First(func(e *Element) bool {
		v, ok := e.Attr("name")
		return e.n.DataAtom == atom.Meta && ok && v == name
	})
}

// EnsureMeta returns the named meta tag, appending it to <head> when the
// shell does not declare one.
func (d *Document) EnsureMeta(name string) *Element {
	if el, ok := d.MetaByName(name); ok {
		return el
	}
	el := NewElement("meta")
	el.SetAttr("name", name)
	if head := d.Head(); head != nil {
		head.Append(el)
	}
	return el
}

// SetTitle replaces the text of <title>, creating it if needed.
func (d *Document) SetTitle(title string) {
	el, ok := d.First(func(e *Element) bool { return e.n.DataAtom == atom.Title })
	if !ok {
		el = NewElement("title")
		if head := d.Head(); head != nil {
			head.Append(el)
		}
	}
	el.SetText(title)
}

// Title returns the text of <title>.
func (d *Document) Title() string {
	el, ok := d.First(func(e *Element) bool { return e.n.DataAtom == atom.Title })
	if !ok {
		return ""
	}
	return el.Text()
}
