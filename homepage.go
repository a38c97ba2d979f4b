// Package homepage is the engine behind a small personal website. It
// hydrates embedded HTML shells with the site's content and per-visitor
// preferences, either per request from an Echo server or once per page in
// a static build.
package homepage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khanhhoang/homepage/giscus"
	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/shells"
	"github.com/khanhhoang/homepage/site"
)

// App is the central application. It wires together the shell cache,
// manifest, handlers, middleware and live reload.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Shells   *ShellCache
	Manifest *Manifest

	origin       *url.URL
	prefLimiter  *PrefLimiter
	reloader     *Reloader
	customRoutes []func(*App)
	shellFS      fs.FS
	now          func() time.Time
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()

	origin, err := url.Parse(cfg.URL)
	if err != nil || origin.Host == "" {
		return nil, fmt.Errorf("homepage: invalid site URL %q", cfg.URL)
	}

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		origin:  origin,
		shellFS: shells.FS,
		now:     time.Now,
	}
	if cfg.ShellsDir != "" {
		a.shellFS = os.DirFS(cfg.ShellsDir)
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Shells = NewShellCache(a.shellFS, cfg.ShellCacheTTL)
	return a, nil
}

// Session creates the per-visit state for hydrating one page.
func (a *App) Session(store prefs.Store, sig site.Signals) *site.Session {
	return site.New(a.siteConfig(), store, sig)
}

func (a *App) siteConfig() site.Config {
	return site.Config{
		Origin:   a.origin,
		Comments: a.Config.Comments,
		Syncer:   giscus.NewSyncer(),
		Now:      a.now,
	}
}

// Setup installs middleware and routes without starting the server.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("homepage: SessionSecret is required")
	}

	if _, err := os.Stat(a.Config.ManifestPath); err == nil {
		m, err := OpenManifest(a.Config.ManifestPath)
		if err != nil {
			return fmt.Errorf("homepage: open manifest: %w", err)
		}
		a.Manifest = m
	}

	a.prefLimiter = NewPrefLimiter(a.Config.PrefRateLimit, time.Minute)

	if a.Config.Watch {
		a.reloader = NewReloader(a.Shells)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets up the app and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	if a.reloader != nil {
		dirs := []string{a.Config.StaticDir}
		if a.Config.ShellsDir != "" {
			dirs = append(dirs, a.Config.ShellsDir)
		}
		stop, err := a.reloader.WithLogger(ctx).Watch(dirs...)
		if err != nil {
			return fmt.Errorf("homepage: watch: %w", err)
		}
		defer stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	if assets, err := a.assetFS(); err == nil {
		serveAssets := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets))))
		e.GET("/public/site.js", serveAssets)
		e.GET("/public/styles.css", serveAssets)
	}
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handlePage)
	e.GET("/index.html", handleIndexRedirect)
	e.GET("/writing.html", a.handleWriting)
	e.GET("/fragments/writing-:filter", a.handleWritingFragment)
	e.GET("/:page", a.handlePage)
	e.GET("/posts/:page", a.handlePage)
	e.GET("/reviews/:page", a.handlePage)

	pg := e.Group("", a.rateLimitPrefs)
	pg.POST("/theme", a.handleTheme)
	pg.POST("/avatar-blur", a.handleAvatarBlur)

	if a.reloader != nil {
		e.GET(LiveReloadPath, a.reloader.Handle)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.prefLimiter != nil {
		a.prefLimiter.Stop()
	}
	if a.reloader != nil {
		a.reloader.Close()
	}
	if a.Manifest != nil {
		return a.Manifest.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("homepage: required environment variable %s is not set", key)
	}
	return v
}
