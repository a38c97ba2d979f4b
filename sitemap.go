package homepage

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapXML lists every page. Dates come from the build manifest when one
// exists, and from the writing entry otherwise.
func (a *App) SitemapXML() ([]byte, error) {
	base := a.Config.URL
	var urls []sitemapURL
	for _, p := range Pages() {
		u := sitemapURL{Loc: BuildURL(base, p.Path)}
		if a.Manifest != nil {
			if mod, ok := a.Manifest.LastMod(p.OutputName()); ok {
				u.LastMod = mod
			}
		}
		if u.LastMod == "" {
			if e, ok := p.Entry(); ok {
				u.LastMod = e.Date
			}
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	return encodeXML(sitemap)
}

// RobotsTxt allows everything and points at the sitemap.
func (a *App) RobotsTxt() string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
}

func encodeXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("homepage: encode xml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
