package homepage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupTestManifest(t *testing.T) (*Manifest, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "manifest.db")

	m, err := OpenManifest(path)
	if err != nil {
		t.Fatalf("failed to open manifest: %v", err)
	}
	return m, func() { m.Close() }
}

var (
	day1 = time.Date(2026, 1, 22, 9, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
)

func TestOpenManifest(t *testing.T) {
	m, cleanup := setupTestManifest(t)
	defer cleanup()

	if m == nil || m.db == nil {
		t.Fatal("manifest should be open")
	}
}

func TestRecordDetectsChanges(t *testing.T) {
	m, cleanup := setupTestManifest(t)
	defer cleanup()

	build1, err := m.BeginBuild(day1)
	if err != nil {
		t.Fatalf("BeginBuild failed: %v", err)
	}
	changed, err := m.Record("index.html", "aaa", 10, build1, day1)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !changed {
		t.Error("first record should be a change")
	}

	build2, err := m.BeginBuild(day2)
	if err != nil {
		t.Fatal(err)
	}
	if build1 == build2 {
		t.Fatal("build ids should be unique")
	}
	changed, err = m.Record("index.html", "aaa", 10, build2, day2)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("same hash should not be a change")
	}
	r, err := m.Lookup("index.html")
	if err != nil {
		t.Fatal(err)
	}
	if !r.UpdatedAt.Equal(day1) {
		t.Errorf("UpdatedAt = %v, want %v", r.UpdatedAt, day1)
	}
	if r.BuildID != build2 {
		t.Errorf("BuildID = %q, want %q", r.BuildID, build2)
	}

	changed, err = m.Record("index.html", "bbb", 12, build2, day2)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("new hash should be a change")
	}
	if got, _ := m.LastMod("index.html"); got != "2026-02-03" {
		t.Errorf("LastMod = %q", got)
	}
}

func TestLookupMissing(t *testing.T) {
	m, cleanup := setupTestManifest(t)
	defer cleanup()

	if _, err := m.Lookup("nope.html"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, ok := m.LastMod("nope.html"); ok {
		t.Error("LastMod should miss")
	}
}

func TestFinishBuildPrunesStalePages(t *testing.T) {
	m, cleanup := setupTestManifest(t)
	defer cleanup()

	b1, _ := m.BeginBuild(day1)
	m.Record("index.html", "a", 1, b1, day1)
	m.Record("old.html", "b", 1, b1, day1)
	if err := m.FinishBuild(b1, 2, 0, day1); err != nil {
		t.Fatal(err)
	}

	b2, _ := m.BeginBuild(day2)
	m.Record("index.html", "a", 1, b2, day2)
	if err := m.FinishBuild(b2, 0, 1, day2); err != nil {
		t.Fatal(err)
	}

	pages, err := m.ListPages()
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].Path != "index.html" {
		t.Fatalf("pages = %+v, want only index.html", pages)
	}

	last, err := m.LastBuild()
	if err != nil {
		t.Fatal(err)
	}
	if last.ID != b2 || last.Skipped != 1 || last.Written != 0 {
		t.Errorf("LastBuild = %+v", last)
	}
	if !last.FinishedAt.Equal(day2) {
		t.Errorf("FinishedAt = %v", last.FinishedAt)
	}
}
