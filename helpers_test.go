package homepage

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		path []string
		want string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com/", []string{"/"}, "https://example.com/"},
		{"https://example.com", []string{"/writing.html"}, "https://example.com/writing.html"},
		{"https://example.com", []string{"sitemap.xml"}, "https://example.com/sitemap.xml"},
		{"https://example.com/site", []string{"posts", "quiet-systems.html"}, "https://example.com/site/posts/quiet-systems.html"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.path...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestContentHashStable(t *testing.T) {
	a := contentHash([]byte("hello"))
	if a != contentHash([]byte("hello")) {
		t.Fatal("expected equal hashes for equal content")
	}
	if a == contentHash([]byte("hello!")) {
		t.Fatal("expected different hashes for different content")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %q", a)
	}
}

func TestLookupPage(t *testing.T) {
	tests := []struct {
		path    string
		ok      bool
		shell   string
		article string
	}{
		{"/", true, "pages/index.html", ""},
		{"/index.html", true, "pages/index.html", ""},
		{"/writing.html", true, "pages/writing.html", ""},
		{"/posts/quiet-systems.html", true, "pages/posts/quiet-systems.html", "articles/quiet-systems.md"},
		{"/reviews/atomic-habits-notes.html", true, "pages/reviews/atomic-habits-notes.html", "articles/atomic-habits-notes.md"},
		{"/missing.html", false, "", ""},
	}
	for _, tt := range tests {
		p, ok := LookupPage(tt.path)
		if ok != tt.ok {
			t.Errorf("LookupPage(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if p.Shell != tt.shell || p.Article != tt.article {
			t.Errorf("LookupPage(%q) = %+v", tt.path, p)
		}
	}
}

func TestPageEntry(t *testing.T) {
	p, _ := LookupPage("/posts/quiet-systems.html")
	e, ok := p.Entry()
	if !ok || e.Title != "Building Quiet Systems" {
		t.Fatalf("expected the quiet systems entry, got %+v", e)
	}
	p, _ = LookupPage("/cv.html")
	if _, ok := p.Entry(); ok {
		t.Fatal("cv page has no writing entry")
	}
}
