package views

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/khanhhoang/homepage/content"
)

func render(t *testing.T) func(string, error) string {
	return func(s string, err error) string {
		t.Helper()
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		return s
	}
}

func TestWritingCardPublished(t *testing.T) {
	e := content.WritingEntry{
		Title: "Building Quiet Systems", Excerpt: "Less noise.", Date: "2025-11-15",
		Kind: content.KindPost, URL: "/posts/quiet-systems.html", Tag: "Systems", ReadingTime: "6 min",
	}
	got := render(t)(ToString(context.Background(), WritingCard(e)))
	for _, want := range []string{
		`<article class="card reveal">`,
		`<p class="eyebrow">Post · 6 min</p>`,
		`<span>Nov 15, 2025</span>`,
		`<a href="/posts/quiet-systems.html">Read post</a>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}
	if strings.Contains(got, DraftNote) {
		t.Error("published card shows draft note")
	}
}

func TestWritingCardDraft(t *testing.T) {
	e := content.WritingEntry{Title: "Soon", Date: "2025-01-01", Kind: content.KindReview, URL: content.DraftURL, ReadingTime: "5 min"}
	got := render(t)(ToString(context.Background(), WritingCard(e)))
	if !strings.Contains(got, `<span class="inline-note">Draft in progress</span>`) {
		t.Errorf("draft note missing: %s", got)
	}
	if strings.Contains(got, "<a ") {
		t.Errorf("draft rendered a link: %s", got)
	}
	if !strings.Contains(got, "Book Review · 5 min") {
		t.Errorf("review eyebrow missing: %s", got)
	}
}

func TestCardsEscape(t *testing.T) {
	e := content.WritingEntry{Title: "<script>x</script>", URL: "javascript:alert(1)", Date: "bad"}
	got := render(t)(ToString(context.Background(), WritingCard(e)))
	if strings.Contains(got, "<script>") {
		t.Errorf("title not escaped: %s", got)
	}
	if strings.Contains(got, "javascript:") {
		t.Errorf("unsafe href kept: %s", got)
	}
	if !strings.Contains(got, "<span>bad</span>") {
		t.Errorf("unparsable date should pass through: %s", got)
	}
}

func TestProjectCard(t *testing.T) {
	p := content.ProjectEntry{Name: "Beacon", Stack: []string{"Go", "SQLite"}, Link: "https://example.com", Year: "2024"}
	got := render(t)(ToString(context.Background(), ProjectCard(p, ViewProject)))
	if !strings.Contains(got, `<p class="tag-list">Go · SQLite</p>`) {
		t.Errorf("stack line missing: %s", got)
	}
	if !strings.Contains(got, ">View project</a>") {
		t.Errorf("label missing: %s", got)
	}
}

func TestExperienceListOrder(t *testing.T) {
	items := content.Experience()
	got := render(t)(ToString(context.Background(), ExperienceList(items)))
	if n := strings.Count(got, `class="timeline-item reveal"`); n != len(items) {
		t.Fatalf("items = %d, want %d", n, len(items))
	}
	last := -1
	for _, x := range items {
		i := strings.Index(got, templEscaped(x.Role))
		if i < last {
			t.Errorf("%q out of order", x.Role)
		}
		last = i
	}
}

func templEscaped(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;").Replace(s)
}

func TestArticleJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Author: "K"}
	e := content.WritingEntry{Title: "T", Kind: content.KindReview, URL: "/reviews/a.html", Date: "2025-01-01"}
	var data map[string]any
	if err := json.Unmarshal([]byte(ArticleJsonLD(cfg, e)), &data); err != nil {
		t.Fatal(err)
	}
	if data["@type"] != "Review" {
		t.Errorf("@type = %v", data["@type"])
	}
	if data["url"] != "https://example.com/reviews/a.html" {
		t.Errorf("url = %v", data["url"])
	}
}
