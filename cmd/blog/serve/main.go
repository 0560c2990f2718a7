package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the markdown content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
		baseURL    = flag.String("base-url", "http://localhost:8080", "Canonical site base URL used in links")
		title      = flag.String("title", "Blog", "Site title rendered in layouts")
		author     = flag.String("author", "", "Site author shown in the footer")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		theme      = flag.String("theme", "", "Theme name to apply (enables the themes feature)")
		themesDir  = flag.String("themes-dir", "themes", "Directory containing theme manifests")
		watch      = flag.Bool("watch", true, "Reload content when files change")
		logLevel   = flag.String("log-level", "info", "Minimum log level")
	)

	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:   *contentDir,
		Pattern:      *pattern,
		Recursive:    true,
		BaseURL:      *baseURL,
		SiteTitle:    *title,
		SiteAuthor:   *author,
		Theme:        *theme,
		ThemesDir:    *themesDir,
		LogLevel:     *logLevel,
		EnableServer: true,
		Addr:         *addr,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Module.Store().Reload(ctx); err != nil {
		log.Fatalf("load content: %v", err)
	}

	if *watch {
		watcher, err := watchContent(ctx, *contentDir, module.Module.Store(), module.Logger)
		if err != nil {
			module.Logger.Warn("content watch unavailable", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	srv := module.Module.Server().HTTPServer()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	module.Logger.Info("serving blog", "addr", *addr, "content_dir", *contentDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}

// watchContent re-scans the content directory after filesystem changes. Events
// are debounced so editor save bursts trigger a single reload.
func watchContent(ctx context.Context, dir string, docs interfaces.DocumentStore, logger interfaces.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return watcher.Add(path)
		}
		return nil
	}); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		const debounce = 500 * time.Millisecond
		var reloadTimer *time.Timer

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logger.Warn("watch new directory", "path", event.Name, "error", err)
						}
					}
				}
				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(debounce, func() {
					if err := docs.Reload(ctx); err != nil {
						logger.Error("content reload failed", "error", err)
						return
					}
					logger.Info("content reloaded", "trigger", event.Name)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
			}
		}
	}()

	return watcher, nil
}
