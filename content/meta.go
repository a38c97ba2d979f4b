package content

// SiteName is the owner's display name used in titles.
const SiteName = "Khanh Hoang"

// AnalyticsDashboardURL is the public dashboard linked from the footer.
const AnalyticsDashboardURL = "https://datafa.st/share/6988a75508b2828cdde2c989?realtime=1"

// DefaultMeta is used for any path missing from PageMeta.
var DefaultMeta = Meta{
	Title:       SiteName + " | Writing, Projects, Books",
	Description: "Khanh's personal site with technical writing, book reviews, projects, and CV.",
}

// PageMeta maps a normalized path to its metadata.
var PageMeta = map[string]Meta{
	"/": DefaultMeta,
	"/writing.html": {
		Title:       "Writing | " + SiteName,
		Description: "Writing archive: engineering essays and notes by Khanh.",
	},
	"/books.html": {
		Title:       "Books | " + SiteName,
		Description: "Book reviews and reading notes by Khanh.",
	},
	"/projects.html": {
		Title:       "Projects | " + SiteName,
		Description: "Projects by Khanh: software systems, tools, and experiments.",
	},
	"/cv.html": {
		Title:       "CV | " + SiteName,
		Description: "CV and professional background of Khanh.",
	},
	"/posts/quiet-systems.html": {
		Title:       "Building Quiet Systems | " + SiteName,
		Description: "Building Quiet Systems - an essay by Khanh.",
	},
	"/posts/deep-work-notes.html": {
		Title:       "Deep Work Notes for Engineers | " + SiteName,
		Description: "Deep Work Notes for Engineers - an essay by Khanh.",
	},
	"/reviews/atomic-habits-notes.html": {
		Title:       "Atomic Habits: What Actually Stuck | " + SiteName,
		Description: "Atomic Habits review notes by Khanh.",
	},
}

// Lookup returns the metadata for a normalized path, or DefaultMeta.
func Lookup(path string) Meta {
	if m, ok := PageMeta[path]; ok {
		return m
	}
	return DefaultMeta
}
