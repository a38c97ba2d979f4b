package homepage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/khanhhoang/homepage/content"
	"github.com/khanhhoang/homepage/prefs"
	"github.com/khanhhoang/homepage/sections"
	"github.com/khanhhoang/homepage/shells"
	"github.com/khanhhoang/homepage/site"
	"github.com/khanhhoang/homepage/views"
)

// BuildOptions controls a static build.
type BuildOptions struct {
	Reporter Reporter // nil reports nothing
	Force    bool     // rewrite files even when the manifest says unchanged
}

// BuildResult summarizes a finished build.
type BuildResult struct {
	ID      string
	Written int
	Skipped int
	Removed int
	Files   []string
}

// ErrUnsafeOutDir is returned when the output directory would cover the
// working tree or the static sources.
var ErrUnsafeOutDir = errors.New("homepage: refusing to build into this directory")

type buildFile struct {
	name string
	data []byte
}

// Build renders every page and writes the site into Config.OutDir. Pages
// are hydrated with default preferences and no client hints, so they
// carry the "system" theme and the client script takes over from there.
func (a *App) Build(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	ctx, span := tracer.Start(ctx, "homepage.Build")
	defer span.End()
	log := logger(ctx)

	rep := opts.Reporter
	if rep == nil {
		rep = nopReporter{}
	}

	if err := a.checkOutDir(); err != nil {
		return BuildResult{}, err
	}
	if a.Manifest == nil {
		if err := os.MkdirAll(filepath.Dir(a.Config.ManifestPath), 0o755); err != nil {
			return BuildResult{}, fmt.Errorf("homepage: create manifest dir: %w", err)
		}
		m, err := OpenManifest(a.Config.ManifestPath)
		if err != nil {
			return BuildResult{}, err
		}
		a.Manifest = m
	}

	files, err := a.collect(ctx)
	if err != nil {
		span.RecordError(err)
		log.Error("build failed", "span", spanID(ctx), "error", err)
		return BuildResult{}, err
	}

	id, err := a.Manifest.BeginBuild(a.now())
	if err != nil {
		return BuildResult{}, err
	}
	res := BuildResult{ID: id}
	span.SetAttributes(attribute.String("build.id", id))

	// The sitemap reads lastmod from the manifest, so it goes last.
	rep.Start(len(files) + 1)
	for i, f := range files {
		if err := a.emit(f, id, opts.Force, &res); err != nil {
			span.RecordError(err)
			log.Error("build failed", "span", spanID(ctx), "file", f.name, "error", err)
			return res, err
		}
		rep.Update(i+1, f.name)
	}
	sitemap, err := a.SitemapXML()
	if err != nil {
		return res, err
	}
	if err := a.emit(buildFile{name: "sitemap.xml", data: sitemap}, id, opts.Force, &res); err != nil {
		return res, err
	}
	rep.Update(len(files)+1, "sitemap.xml")
	rep.Finish()

	removed, err := a.prune(id)
	if err != nil {
		return res, err
	}
	res.Removed = removed

	if err := a.Manifest.FinishBuild(id, res.Written, res.Skipped, a.now()); err != nil {
		return res, err
	}
	span.SetAttributes(
		attribute.Int("build.written", res.Written),
		attribute.Int("build.skipped", res.Skipped),
	)
	log.Info("build finished", "id", id, "written", res.Written, "skipped", res.Skipped, "removed", res.Removed)
	return res, nil
}

// checkOutDir rejects an output dir that is, or contains, the working
// dir, a source dir or the manifest.
func (a *App) checkOutDir() error {
	out, err := filepath.Abs(a.Config.OutDir)
	if err != nil {
		return err
	}
	if out == filepath.Dir(out) {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeOutDir, a.Config.OutDir)
	}
	protected := []string{a.Config.StaticDir, filepath.Dir(a.Config.ManifestPath)}
	if wd, err := os.Getwd(); err == nil {
		protected = append(protected, wd)
	}
	if a.Config.ShellsDir != "" {
		protected = append(protected, a.Config.ShellsDir)
	}
	for _, p := range protected {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if within(out, abs) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutDir, a.Config.OutDir, p)
		}
	}
	return nil
}

// within reports whether p is dir or lies below it.
func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

// collect renders everything the build writes except the sitemap.
func (a *App) collect(ctx context.Context) ([]buildFile, error) {
	var files []buildFile

	for _, page := range Pages() {
		doc, err := a.Hydrate(ctx, page, a.buildSession(), content.FilterAll)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := doc.Render(&buf); err != nil {
			return nil, fmt.Errorf("homepage: render %s: %w", page.Path, err)
		}
		files = append(files, buildFile{name: page.OutputName(), data: buf.Bytes()})
	}

	for _, f := range []content.Filter{content.FilterAll, content.FilterPost, content.FilterReview} {
		html, err := views.ToString(ctx, sections.WritingFragment(f))
		if err != nil {
			return nil, fmt.Errorf("homepage: render fragment %s: %w", f, err)
		}
		files = append(files, buildFile{name: FragmentName(f), data: []byte(html)})
	}

	notFound, err := a.ErrorDocument(ctx, notFoundShell, "Page not found", "/404.html", a.buildSession())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := notFound.Render(&buf); err != nil {
		return nil, fmt.Errorf("homepage: render 404: %w", err)
	}
	files = append(files, buildFile{name: "404.html", data: buf.Bytes()})

	feed, err := a.FeedXML()
	if err != nil {
		return nil, err
	}
	files = append(files,
		buildFile{name: "feed.xml", data: feed},
		buildFile{name: "robots.txt", data: []byte(a.RobotsTxt())},
	)

	assets, err := a.embeddedAssets()
	if err != nil {
		return nil, err
	}
	files = append(files, assets...)

	static, err := a.staticFiles()
	if err != nil {
		return nil, err
	}
	files = append(files, static...)

	if a.Config.AvatarPath != "" {
		avatar, err := a.avatarFiles()
		if err != nil {
			return nil, err
		}
		files = append(files, avatar...)
	}
	return files, nil
}

func (a *App) buildSession() *site.Session {
	return a.Session(prefs.NewMemory(), site.Signals{})
}

// FragmentName is the build path of the writing list for filter.
func FragmentName(f content.Filter) string {
	return "fragments/writing-" + string(f) + ".html"
}

func (a *App) embeddedAssets() ([]buildFile, error) {
	var files []buildFile
	err := fs.WalkDir(a.shellFS, shells.AssetsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(a.shellFS, p)
		if err != nil {
			return err
		}
		rel := p[len(shells.AssetsDir)+1:]
		files = append(files, buildFile{name: path.Join("public", rel), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("homepage: read embedded assets: %w", err)
	}
	return files, nil
}

func (a *App) staticFiles() ([]buildFile, error) {
	root := a.Config.StaticDir
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var files []buildFile
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if excluded(a.Config.Excludes, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, buildFile{name: path.Join("public", rel), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("homepage: copy static files: %w", err)
	}
	return files, nil
}

func excluded(patterns []string, rel string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, rel+"/"); ok {
			return true
		}
	}
	return false
}

func (a *App) avatarFiles() ([]buildFile, error) {
	f, err := os.Open(a.Config.AvatarPath)
	if err != nil {
		return nil, fmt.Errorf("homepage: open avatar: %w", err)
	}
	defer f.Close()
	full, blurred, err := ProcessAvatar(f)
	if err != nil {
		return nil, fmt.Errorf("homepage: process avatar: %w", err)
	}
	return []buildFile{
		{name: path.Join("public", AvatarFile), data: full},
		{name: path.Join("public", AvatarBlurFile), data: blurred},
	}, nil
}

// emit writes f unless the manifest already holds its hash and the file
// is still on disk. The manifest is only updated once the file is written.
func (a *App) emit(f buildFile, buildID string, force bool, res *BuildResult) error {
	hash := contentHash(f.data)
	res.Files = append(res.Files, f.name)

	dst := filepath.Join(a.Config.OutDir, filepath.FromSlash(f.name))
	if !force {
		prev, err := a.Manifest.Lookup(f.name)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err == nil && prev.Hash == hash {
			if _, err := os.Stat(dst); err == nil {
				if _, err := a.Manifest.Record(f.name, hash, len(f.data), buildID, a.now()); err != nil {
					return err
				}
				res.Skipped++
				return nil
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("homepage: create dir for %s: %w", f.name, err)
	}
	if err := os.WriteFile(dst, f.data, 0o644); err != nil {
		return fmt.Errorf("homepage: write %s: %w", f.name, err)
	}
	if _, err := a.Manifest.Record(f.name, hash, len(f.data), buildID, a.now()); err != nil {
		return err
	}
	res.Written++
	return nil
}

// prune removes output files an earlier build recorded that this build
// no longer produces. Files the manifest never recorded are left alone.
func (a *App) prune(buildID string) (int, error) {
	records, err := a.Manifest.ListPages()
	if err != nil {
		return 0, fmt.Errorf("homepage: list manifest: %w", err)
	}
	removed := 0
	for _, r := range records {
		if r.BuildID == buildID {
			continue
		}
		rel := filepath.FromSlash(r.Path)
		if !filepath.IsLocal(rel) {
			continue
		}
		err := os.Remove(filepath.Join(a.Config.OutDir, rel))
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return removed, fmt.Errorf("homepage: remove stale %s: %w", r.Path, err)
		}
	}
	return removed, nil
}

// spanID is logged with build failures so they can be matched to a trace.
func spanID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.HasSpanID() {
		return ""
	}
	return sc.SpanID().String()
}
