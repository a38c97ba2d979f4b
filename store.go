package homepage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when the manifest has no record for a path.
var ErrNotFound = sql.ErrNoRows

// Manifest wraps a SQLite database recording what each build wrote. It
// lets a build skip unchanged files and gives the sitemap real lastmod dates.
type Manifest struct {
	db *sql.DB
}

// PageRecord is the manifest entry for one output file.
type PageRecord struct {
	Path      string
	Hash      string
	Size      int
	BuildID   string
	UpdatedAt time.Time
}

// BuildRecord describes one build run.
type BuildRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Written    int
	Skipped    int
}

// OpenManifest opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func OpenManifest(path string) (*Manifest, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	m := &Manifest{db: db}
	if err := m.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// Close closes the underlying database connection.
func (m *Manifest) Close() error {
	return m.db.Close()
}

func (m *Manifest) ensureSchema() error {
	_, err := m.db.Exec(`
CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL DEFAULT '',
    written INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS pages (
    path TEXT PRIMARY KEY,
    hash TEXT NOT NULL,
    size INTEGER NOT NULL,
    build_id TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	return err
}

// BeginBuild records a new build and returns its id.
func (m *Manifest) BeginBuild(now time.Time) (string, error) {
	id := uuid.NewString()
	if _, err := m.db.Exec(`INSERT INTO builds (id, started_at) VALUES (?, ?)`, id, now.UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("homepage: begin build: %w", err)
	}
	return id, nil
}

// FinishBuild stores the counts for a build and forgets pages it did not
// produce.
func (m *Manifest) FinishBuild(id string, written, skipped int, now time.Time) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`UPDATE builds SET finished_at = ?, written = ?, skipped = ? WHERE id = ?`,
		now.UTC().Format(time.RFC3339), written, skipped, id); err != nil {
		return fmt.Errorf("homepage: finish build: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM pages WHERE build_id != ?`, id); err != nil {
		return fmt.Errorf("homepage: prune manifest: %w", err)
	}
	return tx.Commit()
}

// Record stores the hash for path under buildID. It reports whether the
// content changed since the last build; unchanged pages keep their
// updated_at.
func (m *Manifest) Record(path, hash string, size int, buildID string, now time.Time) (bool, error) {
	prev, err := m.Lookup(path)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return false, err
	case prev.Hash == hash:
		_, err := m.db.Exec(`UPDATE pages SET build_id = ? WHERE path = ?`, buildID, path)
		return false, err
	}
	_, err = m.db.Exec(`INSERT OR REPLACE INTO pages (path, hash, size, build_id, updated_at) VALUES (?, ?, ?, ?, ?)`,
		path, hash, size, buildID, now.UTC().Format(time.RFC3339))
	if err != nil {
		return false, fmt.Errorf("homepage: record %s: %w", path, err)
	}
	return true, nil
}

// Lookup returns the record for path.
func (m *Manifest) Lookup(path string) (PageRecord, error) {
	var r PageRecord
	var updated string
	err := m.db.QueryRow(`SELECT path, hash, size, build_id, updated_at FROM pages WHERE path = ?`, path).
		Scan(&r.Path, &r.Hash, &r.Size, &r.BuildID, &updated)
	if err != nil {
		return PageRecord{}, err
	}
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return r, nil
}

// LastMod returns the date path last changed, formatted for sitemaps.
func (m *Manifest) LastMod(path string) (string, bool) {
	r, err := m.Lookup(path)
	if err != nil || r.UpdatedAt.IsZero() {
		return "", false
	}
	return r.UpdatedAt.Format("2006-01-02"), true
}

// ListPages returns every record ordered by path.
func (m *Manifest) ListPages() ([]PageRecord, error) {
	rows, err := m.db.Query(`SELECT path, hash, size, build_id, updated_at FROM pages ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PageRecord
	for rows.Next() {
		var r PageRecord
		var updated string
		if err := rows.Scan(&r.Path, &r.Hash, &r.Size, &r.BuildID, &updated); err != nil {
			return nil, err
		}
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastBuild returns the most recently started build.
func (m *Manifest) LastBuild() (BuildRecord, error) {
	var b BuildRecord
	var started, finished string
	err := m.db.QueryRow(`SELECT id, started_at, finished_at, written, skipped FROM builds ORDER BY started_at DESC, rowid DESC LIMIT 1`).
		Scan(&b.ID, &started, &finished, &b.Written, &b.Skipped)
	if err != nil {
		return BuildRecord{}, err
	}
	b.StartedAt, _ = time.Parse(time.RFC3339, started)
	b.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return b, nil
}
