package server

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config carries the HTTP surface settings.
type Config struct {
	Addr         string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Renderer converts a stored document into final HTML.
type Renderer interface {
	RenderDocument(ctx context.Context, doc *interfaces.Document) (string, error)
}

// Server exposes the listing and article routes over HTTP.
type Server struct {
	cfg      Config
	store    interfaces.DocumentStore
	renderer Renderer
	composer *layout.Composer
	urls     *layout.URLResolver
	theme    layout.ThemeContext
	logger   interfaces.Logger
}

type Option func(*Server)

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithThemeContext applies a resolved theme to every composed page.
func WithThemeContext(theme layout.ThemeContext) Option {
	return func(s *Server) {
		s.theme = theme
	}
}

func New(cfg Config, docs interfaces.DocumentStore, renderer Renderer, composer *layout.Composer, urls *layout.URLResolver, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		store:    docs,
		renderer: renderer,
		composer: composer,
		urls:     urls,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table. Patterns use the Go 1.22 method+path form.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	listingPath := joinPath(s.cfg.BasePath, "blog")
	mux.HandleFunc("GET "+listingPath+"/{$}", s.handleListing)
	mux.HandleFunc("GET "+listingPath, s.handleListing)
	mux.HandleFunc("GET "+listingPath+"/{slug}", s.handleArticle)
	mux.HandleFunc("GET "+joinPath(s.cfg.BasePath, "healthz"), s.handleHealth)

	root := joinPath(s.cfg.BasePath, "")
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	mux.HandleFunc("GET "+root+"{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, listingPath, http.StatusTemporaryRedirect)
	})

	return mux
}

// HTTPServer wraps the handler with the configured timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

func (s *Server) handleListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := s.store.List(ctx)
	if err != nil {
		s.renderError(ctx, w, err)
		return
	}

	items := make([]layout.ListingItem, 0, len(docs))
	for _, doc := range docs {
		url, err := s.urls.ArticleURL(doc.Slug)
		if err != nil {
			s.renderError(ctx, w, err)
			return
		}
		items = append(items, layout.ListingItem{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			URL:         url,
			Date:        doc.Metadata.Date,
			Tags:        doc.Metadata.Tags,
		})
	}

	html, err := s.composer.Listing(ctx, layout.PageContext{
		Theme: s.theme,
		Nav:   s.navigation(),
		Items: items,
	})
	if err != nil {
		s.renderError(ctx, w, err)
		return
	}

	s.logger.WithContext(ctx).Debug("server.listing_served", "articles", len(items))
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	doc, err := s.store.Get(ctx, slug)
	if err != nil {
		s.renderError(ctx, w, err)
		return
	}

	body, err := s.renderer.RenderDocument(ctx, doc)
	if err != nil {
		s.logger.WithContext(ctx).Error("server.render_failed", "slug", slug, "error", err)
		s.renderError(ctx, w, err)
		return
	}

	canonical, err := s.urls.ArticleURL(doc.Slug)
	if err != nil {
		s.renderError(ctx, w, err)
		return
	}

	html, err := s.composer.Article(ctx, layout.PageContext{
		Theme: s.theme,
		Nav:   s.navigation(),
		Article: &layout.ArticleView{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			Date:        doc.Metadata.Date,
			Authors:     doc.Metadata.Authors,
			Tags:        doc.Metadata.Tags,
			URL:         canonical,
			Content:     template.HTML(body),
		},
	})
	if err != nil {
		s.renderError(ctx, w, err)
		return
	}

	s.logger.WithContext(ctx).Debug("server.article_served", "slug", doc.Slug)
	writeHTML(w, http.StatusOK, html)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// renderError composes the error boundary page; if even that fails the
// handler degrades to a plain-text response.
func (s *Server) renderError(ctx context.Context, w http.ResponseWriter, err error) {
	status, title, message := mapError(err)

	html, composeErr := s.composer.ErrorPage(ctx, layout.PageContext{
		Theme: s.theme,
		Nav:   s.navigation(),
		Error: &layout.ErrorView{Status: status, Title: title, Message: message},
	})
	if composeErr != nil {
		s.logger.WithContext(ctx).Error("server.error_page_failed", "error", composeErr)
		http.Error(w, title, status)
		return
	}

	writeHTML(w, status, html)
}

func (s *Server) navigation() layout.Navigation {
	nav := layout.Navigation{}
	if s.urls != nil {
		if url, err := s.urls.ListingURL(); err == nil {
			nav.ListingURL = url
		}
	}
	if nav.ListingURL == "" {
		nav.ListingURL = joinPath(s.cfg.BasePath, "blog")
	}
	return nav
}
