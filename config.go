package homepage

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/giscus"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `koanf:"name"`        // Site name (default content.SiteName)
	URL         string `koanf:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description"` // Site description for RSS and meta tags
	Author      string `koanf:"author"`      // Author name for JSON-LD

	Addr          string `koanf:"addr"`           // Listen address (default ":3000")
	OutDir        string `koanf:"out_dir"`        // Build output (default "dist")
	StaticDir     string `koanf:"static_dir"`     // User static assets copied into /public (default "public")
	ShellsDir     string `koanf:"shells_dir"`     // Ejected shells; empty uses the embedded ones
	ManifestPath  string `koanf:"manifest_path"`  // SQLite build manifest (default "data/manifest.db")
	AvatarPath    string `koanf:"avatar_path"`    // Source portrait; empty skips avatar processing
	SessionSecret string `koanf:"session_secret"` // Required for serve: preference cookie key
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	Excludes      []string      `koanf:"excludes"`        // Glob patterns skipped when copying static assets
	ShellCacheTTL time.Duration `koanf:"shell_cache_ttl"` // Shell cache TTL (default 5min)
	PrefRateLimit int           `koanf:"pref_rate_limit"` // Preference writes per IP per minute (default 30)
	Watch         bool          `koanf:"watch"`           // Reload shells on change and push live reloads

	Comments giscus.Config `koanf:"comments"`
}

// DefaultExcludes are never copied into a build.
var DefaultExcludes = []string{"**/.DS_Store", "**/*.swp", "**/.git/**", "**/*~"}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = content.SiteName
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Description == "" {
		c.Description = content.DefaultMeta.Description
	}
	if c.Author == "" {
		c.Author = content.SiteName
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.OutDir == "" {
		c.OutDir = "dist"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ManifestPath == "" {
		c.ManifestPath = "data/manifest.db"
	}
	if len(c.Excludes) == 0 {
		c.Excludes = DefaultExcludes
	}
	if c.ShellCacheTTL == 0 {
		c.ShellCacheTTL = 5 * time.Minute
	}
	if c.PrefRateLimit == 0 {
		c.PrefRateLimit = 30
	}
}

// LoadConfig reads an optional YAML file at path, then overlays HOMEPAGE_*
// environment variables (HOMEPAGE_COMMENTS__REPO sets comments.repo).
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("homepage: read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("homepage: access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("HOMEPAGE_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "HOMEPAGE_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("homepage: load env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("homepage: unmarshal config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithShells replaces the embedded shells, e.g. with an ejected directory.
// fsys must contain pages/, articles/ and assets/.
func WithShells(fsys fs.FS) Option {
	return func(a *App) {
		a.shellFS = fsys
	}
}

// WithNow overrides the clock used for the footer year.
func WithNow(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
