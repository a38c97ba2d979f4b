package homepage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LiveReloadPath is the websocket endpoint pages connect to in watch mode.
const LiveReloadPath = "/livereload"

const reloadDebounce = 200 * time.Millisecond

// Reloader watches shell and static directories. On change it drops the
// shell cache and tells every connected page to reload.
type Reloader struct {
	cache    *ShellCache
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	closed  bool
}

// NewReloader creates a Reloader that invalidates cache on change.
func NewReloader(cache *ShellCache) *Reloader {
	return &Reloader{
		cache:   cache,
		log:     slog.Default(),
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// WithLogger sets the logger used for watch events.
func (r *Reloader) WithLogger(ctx context.Context) *Reloader {
	r.log = logger(ctx)
	return r
}

// Watch starts watching dirs and their subdirectories. Missing dirs are
// skipped. The returned func stops the watcher.
func (r *Reloader) Watch(dirs ...string) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, root := range dirs {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			r.log.Info("not watching missing directory", "dir", root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				r.log.Warn("walk", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := w.Add(path); err != nil {
					r.log.Warn("watch", "path", path, "error", err)
				}
			}
			return nil
		})
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	done := make(chan struct{})
	go r.loop(w, done)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			w.Close()
		})
	}, nil
}

func (r *Reloader) loop(w *fsnotify.Watcher, done <-chan struct{}) {
	var timer *time.Timer
	for {
		select {
		case <-done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.Add(event.Name); err != nil {
					r.log.Warn("watch", "path", event.Name, "error", err)
				}
			}
			r.log.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, r.Notify)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			r.log.Warn("watcher error", "error", err)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Notify drops the shell cache and pushes a reload message to every page.
func (r *Reloader) Notify() {
	r.cache.Invalidate()

	r.mu.Lock()
	defer r.mu.Unlock()
	for conn := range r.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(r.clients, conn)
		}
	}
}

// Clients returns the number of connected pages.
func (r *Reloader) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Handle upgrades the request and holds the connection until the page goes
// away.
func (r *Reloader) Handle(c echo.Context) error {
	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		r.log.Warn("livereload upgrade", "error", err)
		return nil
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		conn.Close()
		return nil
	}
	r.clients[conn] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.clients, conn)
		r.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				r.log.Debug("livereload read", "error", err)
			}
			return nil
		}
	}
}

// Close disconnects every page.
func (r *Reloader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for conn := range r.clients {
		conn.Close()
		delete(r.clients, conn)
	}
}
