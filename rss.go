package homepage

import (
	"encoding/xml"
	"time"

	"github.com/khanhhoang/homepage/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// FeedXML is the RSS feed of published writing, newest first. Drafts are
// left out.
func (a *App) FeedXML() ([]byte, error) {
	base := a.Config.URL
	entries := content.Published()
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if t, err := content.ParseDate(e.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := BuildURL(base, e.URL)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        link,
			Description: e.Excerpt,
			Category:    e.KindLabel(),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	return encodeXML(feed)
}
