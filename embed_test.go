package homepage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEjectShells(t *testing.T) {
	dir := t.TempDir()
	written, err := EjectShells(dir, false)
	if err != nil {
		t.Fatalf("EjectShells: %v", err)
	}
	if len(written) == 0 {
		t.Fatal("expected files to be written")
	}
	for _, name := range []string{"pages/index.html", "articles/quiet-systems.md", "assets/site.js"} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	edited := filepath.Join(dir, "pages", "index.html")
	os.WriteFile(edited, []byte("edited"), 0o644)
	again, err := EjectShells(dir, false)
	if err != nil {
		t.Fatalf("second EjectShells: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("expected existing files to be kept, wrote %v", again)
	}
	if b, _ := os.ReadFile(edited); string(b) != "edited" {
		t.Errorf("edited shell was overwritten")
	}
}

func TestEjectedShellsServe(t *testing.T) {
	dir := t.TempDir()
	if _, err := EjectShells(dir, false); err != nil {
		t.Fatalf("EjectShells: %v", err)
	}
	a, err := New(SiteConfig{
		URL:           "https://example.com",
		SessionSecret: "secret",
		ShellsDir:     dir,
		ManifestPath:  filepath.Join(t.TempDir(), "manifest.db"),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer a.Close()

	if rec := get(a, "/cv.html", nil); rec.Code != 200 {
		t.Fatalf("expected 200 from ejected shells, got %d", rec.Code)
	}
}
