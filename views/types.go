package views

// SiteConfig holds the site-wide values the views need for absolute URLs and
// structured data.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Call-to-action labels for project cards. The home page teases projects,
// the index opens them.
const (
	ViewProject = "View project"
	OpenProject = "Open project"
)

// DraftNote is shown instead of a link for entries without a page.
const DraftNote = "Draft in progress"
