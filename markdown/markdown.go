// Package markdown renders article bodies as templ components.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HighlightStyle is the chroma style used for fenced code.
const HighlightStyle = "github"

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle(HighlightStyle),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithXHTML(),
	),
)

// FrontMatter is the optional header of an article file.
type FrontMatter struct {
	Title       string `yaml:"title" toml:"title" json:"title"`
	Date        string `yaml:"date" toml:"date" json:"date"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// Article is a parsed article file.
type Article struct {
	FrontMatter
	Source string
}

// Parse splits src into front matter and Markdown. A missing title falls
// back to one derived from name.
func Parse(name string, src []byte) (Article, error) {
	var a Article
	rest, err := frontmatter.Parse(bytes.NewReader(src), &a.FrontMatter)
	if err != nil {
		return Article{}, fmt.Errorf("markdown: front matter in %s: %w", name, err)
	}
	a.Source = string(rest)
	if strings.TrimSpace(a.Title) == "" {
		a.Title = TitleFromName(name)
	}
	return a, nil
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the HTML representation of content to buf. Raw HTML
// in the source is not passed through.
func RenderMarkdown(buf *bytes.Buffer, content string) error {
	if err := md.Convert([]byte(content), buf); err != nil {
		return fmt.Errorf("markdown: convert: %w", err)
	}
	return nil
}

// TitleFromName turns "deep-work_notes.md" into "Deep Work Notes". A Caser
// holds state, so each call makes its own.
func TitleFromName(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}
