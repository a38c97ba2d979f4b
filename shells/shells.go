// Package shells embeds the page shells, article sources and client assets
// the engine hydrates.
package shells

import "embed"

// FS holds pages/, articles/ and assets/.
//
//go:embed all:pages all:articles all:assets
var FS embed.FS

// Directory names inside FS.
const (
	PagesDir    = "pages"
	ArticlesDir = "articles"
	AssetsDir   = "assets"
)
