package homepage

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/khanhhoang/homepage/dom"
)

// ShellCache is an in-memory cache of raw shell files with TTL. Documents
// are mutated during hydration, so every caller gets a freshly parsed copy.
type ShellCache struct {
	mu      sync.RWMutex
	files   map[string]cachedShell
	ttl     time.Duration
	fsys    fs.FS
	version uint64
}

type cachedShell struct {
	raw     []byte
	fetched time.Time
}

// NewShellCache creates a ShellCache reading from fsys.
func NewShellCache(fsys fs.FS, ttl time.Duration) *ShellCache {
	return &ShellCache{fsys: fsys, ttl: ttl, files: make(map[string]cachedShell)}
}

func (c *ShellCache) valid(s cachedShell) bool {
	return s.raw != nil && (c.ttl <= 0 || time.Since(s.fetched) < c.ttl)
}

// Invalidate clears the cache so the next read goes back to the files.
func (c *ShellCache) Invalidate() {
	c.mu.Lock()
	c.files = make(map[string]cachedShell)
	c.version++
	c.mu.Unlock()
}

// Version increases on every Invalidate.
func (c *ShellCache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Bytes returns the raw shell. It tries a read lock first and only takes
// the write lock if a reload is needed.
func (c *ShellCache) Bytes(name string) ([]byte, error) {
	c.mu.RLock()
	if s, ok := c.files[name]; ok && c.valid(s) {
		c.mu.RUnlock()
		return s.raw, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.files[name]; ok && c.valid(s) {
		return s.raw, nil
	}
	raw, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("homepage: read shell %s: %w", name, err)
	}
	c.files[name] = cachedShell{raw: raw, fetched: time.Now()}
	return raw, nil
}

// Document parses a fresh copy of the named shell.
func (c *ShellCache) Document(name string) (*dom.Document, error) {
	raw, err := c.Bytes(name)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("homepage: parse shell %s: %w", name, err)
	}
	return doc, nil
}
