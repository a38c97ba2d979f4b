// Package content holds the site's hard-coded collections and the small
// helpers that order, filter and format them.
package content

// Kind distinguishes essays from book reviews in the writing collection.
type Kind string

const (
	KindPost   Kind = "post"
	KindReview Kind = "review"
)

// DraftURL marks a writing entry that has no published page yet.
const DraftURL = "#"

// WritingEntry is a post or a book review shown on listing pages.
type WritingEntry struct {
	Title       string
	Excerpt     string
	Date        string // YYYY-MM-DD
	Kind        Kind
	URL         string
	Tag         string
	ReadingTime string
}

// IsDraft reports whether the entry has no target page yet. A draft must
// never be rendered as a navigable link.
func (w WritingEntry) IsDraft() bool {
	return w.URL == DraftURL
}

// KindLabel is the eyebrow label used on cards.
func (w WritingEntry) KindLabel() string {
	if w.Kind == KindReview {
		return "Book Review"
	}
	return "Post"
}

// LinkLabel is the call to action for a published entry.
func (w WritingEntry) LinkLabel() string {
	if w.Kind == KindReview {
		return "Read review"
	}
	return "Read post"
}

// ProjectEntry is a portfolio item.
type ProjectEntry struct {
	Name    string
	Summary string
	Stack   []string
	Link    string
	Year    string
}

// ExperienceEntry is a CV timeline item. Entries render in declared order.
type ExperienceEntry struct {
	Role       string
	Company    string
	Period     string
	Location   string
	Highlights []string
}

// Meta is the title and description pair for a page.
type Meta struct {
	Title       string
	Description string
}
