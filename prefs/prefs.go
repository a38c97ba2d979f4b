// Package prefs stores the two per-visitor preferences the site keeps:
// the theme preference and whether the avatar is blurred.
package prefs

import (
	"strconv"
	"sync"
)

// Keys under which preferences are stored.
const (
	KeyTheme      = "theme_preference"
	KeyAvatarBlur = "avatar_blur_enabled"
)

// Store is a string key/value store scoped to one visitor.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Memory is an in-process Store used by static builds and tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// AvatarBlur reads the avatar blur flag. Missing or malformed values mean
// the avatar stays blurred.
func AvatarBlur(s Store) bool {
	v, ok := s.Get(KeyAvatarBlur)
	if !ok {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}

// SetAvatarBlur persists the avatar blur flag as "true" or "false".
func SetAvatarBlur(s Store, on bool) error {
	return s.Set(KeyAvatarBlur, strconv.FormatBool(on))
}
