package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errStoreRequired    = errors.New("generator: document store is required")
	errRendererRequired = errors.New("generator: renderer is required")
	errComposerRequired = errors.New("generator: composer is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	CleanBuild      bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
	RenderTimeout   time.Duration
}

// Renderer converts a stored document into final HTML.
type Renderer interface {
	RenderDocument(ctx context.Context, doc *interfaces.Document) (string, error)
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Store    interfaces.DocumentStore
	Renderer Renderer
	Composer *layout.Composer
	URLs     *layout.URLResolver
	Theme    layout.ThemeContext
	Site     layout.SiteInfo
	Assets   fs.FS
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	Slugs  []string
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt  int
	AssetsBuilt int
	FeedsBuilt  int
	Duration    time.Duration
	Rendered    []RenderedPage
	Errors      []error
	DryRun      bool
}

// RenderedPage captures the rendered HTML output for a single page.
type RenderedPage struct {
	Slug         string
	Route        string
	Output       string
	HTML         string
	Checksum     string
	LastModified time.Time
	Duration     time.Duration
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Writer == nil {
		deps.Writer = NewFSWriter(cfg.OutputDir)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &service{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg  Config
	deps Dependencies
	now  func() time.Time
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Store == nil {
		return nil, errStoreRequired
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Composer == nil {
		return nil, errComposerRequired
	}

	start := s.now()
	generatedAt := start.UTC()
	logger := s.deps.Logger.WithContext(ctx)

	if err := s.deps.Store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("generator: reload content: %w", err)
	}

	docs, err := s.deps.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: list documents: %w", err)
	}
	docs = filterDocuments(docs, opts.Slugs)

	result := &BuildResult{DryRun: opts.DryRun}
	nav := s.navigation()

	rendered, renderErrs := s.renderAll(ctx, docs, nav, generatedAt)
	result.Rendered = rendered
	result.PagesBuilt = len(rendered)

	listing, err := s.composeListing(ctx, docs, nav, generatedAt)
	if err != nil {
		renderErrs = append(renderErrs, err)
	} else {
		result.Rendered = append(result.Rendered, listing)
		result.PagesBuilt++
	}

	if opts.DryRun {
		result.Duration = time.Since(start)
		result.Errors = renderErrs
		if len(renderErrs) > 0 {
			return result, errors.Join(renderErrs...)
		}
		return result, nil
	}

	if s.cfg.CleanBuild {
		if err := s.deps.Writer.RemoveAll(ctx, "."); err != nil {
			renderErrs = append(renderErrs, fmt.Errorf("generator: clean output: %w", err))
		}
	}
	if err := s.deps.Writer.EnsureDir(ctx, "."); err != nil {
		renderErrs = append(renderErrs, err)
	}

	for _, page := range result.Rendered {
		if err := s.writePage(ctx, page, generatedAt); err != nil {
			renderErrs = append(renderErrs, err)
		}
	}

	if s.cfg.CopyAssets && s.deps.Assets != nil {
		built, err := s.copyAssets(ctx)
		if err != nil {
			renderErrs = append(renderErrs, err)
		}
		result.AssetsBuilt = built
	}

	if s.cfg.GenerateSitemap {
		content := buildSitemap(s.cfg.BaseURL, result.Rendered, generatedAt)
		if err := s.writeArtifact(ctx, "sitemap.xml", content, CategorySitemap, "application/xml"); err != nil {
			renderErrs = append(renderErrs, err)
		}
	}

	if s.cfg.GenerateRobots {
		content := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
		if err := s.writeArtifact(ctx, "robots.txt", content, CategoryRobots, "text/plain"); err != nil {
			renderErrs = append(renderErrs, err)
		}
	}

	if s.cfg.GenerateFeeds {
		built, err := s.writeFeeds(ctx, docs, generatedAt)
		if err != nil {
			renderErrs = append(renderErrs, err)
		}
		result.FeedsBuilt = built
	}

	manifest := newBuildManifest(generatedAt, result.Rendered)
	if encoded, err := json.MarshalIndent(manifest, "", "  "); err == nil {
		if err := s.writeArtifact(ctx, manifestPath, string(encoded)+"\n", CategoryManifest, "application/json"); err != nil {
			renderErrs = append(renderErrs, err)
		}
	} else {
		renderErrs = append(renderErrs, err)
	}

	result.Duration = time.Since(start)
	result.Errors = renderErrs

	logger.Info("generator.build_completed",
		"pages", result.PagesBuilt,
		"assets", result.AssetsBuilt,
		"errors", len(renderErrs),
		"duration_ms", result.Duration.Milliseconds(),
	)

	if len(renderErrs) > 0 {
		return result, errors.Join(renderErrs...)
	}
	return result, nil
}

func (s *service) Clean(ctx context.Context) error {
	return s.deps.Writer.RemoveAll(ctx, ".")
}

// renderAll fans document rendering out over a bounded worker pool. Results
// come back sorted by slug so builds stay deterministic.
func (s *service) renderAll(ctx context.Context, docs []*interfaces.Document, nav layout.Navigation, generatedAt time.Time) ([]RenderedPage, []error) {
	if len(docs) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		rendered = make([]RenderedPage, 0, len(docs))
		errs     []error
	)

	jobs := make(chan *interfaces.Document)
	var wg sync.WaitGroup
	for i := 0; i < s.effectiveWorkerCount(len(docs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				page, err := s.renderPage(ctx, doc, nav, generatedAt)
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					rendered = append(rendered, page)
				}
				mu.Unlock()
			}
		}()
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()
			close(jobs)
			wg.Wait()
			return rendered, errs
		case jobs <- doc:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(rendered, func(i, j int) bool { return rendered[i].Slug < rendered[j].Slug })
	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return rendered, errs
}

func (s *service) renderPage(ctx context.Context, doc *interfaces.Document, nav layout.Navigation, generatedAt time.Time) (RenderedPage, error) {
	start := s.now()

	renderCtx := ctx
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	body, err := s.deps.Renderer.RenderDocument(renderCtx, doc)
	if err != nil {
		return RenderedPage{}, fmt.Errorf("generator: render %s: %w", doc.Slug, err)
	}

	canonical := absoluteURL(s.cfg.BaseURL, routeFor(doc.Slug))
	if s.deps.URLs != nil {
		if url, urlErr := s.deps.URLs.ArticleURL(doc.Slug); urlErr == nil {
			canonical = url
		}
	}

	html, err := s.deps.Composer.Article(renderCtx, layout.PageContext{
		Site:        s.deps.Site,
		Theme:       s.deps.Theme,
		Nav:         nav,
		GeneratedAt: generatedAt,
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
		return RenderedPage{}, fmt.Errorf("generator: compose %s: %w", doc.Slug, err)
	}

	lastModified := doc.LastModified
	if lastModified.IsZero() {
		lastModified = doc.Metadata.Date
	}

	return RenderedPage{
		Slug:         doc.Slug,
		Route:        routeFor(doc.Slug),
		Output:       outputPath(doc.Slug),
		HTML:         html,
		Checksum:     computeChecksum(html),
		LastModified: lastModified,
		Duration:     time.Since(start),
	}, nil
}

func (s *service) composeListing(ctx context.Context, docs []*interfaces.Document, nav layout.Navigation, generatedAt time.Time) (RenderedPage, error) {
	items := make([]layout.ListingItem, 0, len(docs))
	var newest time.Time
	for _, doc := range docs {
		url := absoluteURL(s.cfg.BaseURL, routeFor(doc.Slug))
		if s.deps.URLs != nil {
			if resolved, err := s.deps.URLs.ArticleURL(doc.Slug); err == nil {
				url = resolved
			}
		}
		items = append(items, layout.ListingItem{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			URL:         url,
			Date:        doc.Metadata.Date,
			Tags:        doc.Metadata.Tags,
		})
		if doc.Metadata.Date.After(newest) {
			newest = doc.Metadata.Date
		}
	}

	html, err := s.deps.Composer.Listing(ctx, layout.PageContext{
		Site:        s.deps.Site,
		Theme:       s.deps.Theme,
		Nav:         nav,
		GeneratedAt: generatedAt,
		Items:       items,
	})
	if err != nil {
		return RenderedPage{}, fmt.Errorf("generator: compose listing: %w", err)
	}

	if newest.IsZero() {
		newest = generatedAt
	}

	return RenderedPage{
		Slug:         "",
		Route:        routeFor(""),
		Output:       listingOutputPath,
		HTML:         html,
		Checksum:     computeChecksum(html),
		LastModified: newest,
	}, nil
}

func (s *service) writePage(ctx context.Context, page RenderedPage, generatedAt time.Time) error {
	return s.deps.Writer.WriteFile(ctx, WriteFileRequest{
		Path:        page.Output,
		Content:     strings.NewReader(page.HTML),
		Size:        int64(len(page.HTML)),
		Category:    CategoryPage,
		ContentType: "text/html",
		Checksum:    page.Checksum,
		Metadata: map[string]string{
			"route":        page.Route,
			"generated_at": generatedAt.Format(time.RFC3339),
		},
	})
}

func (s *service) writeArtifact(ctx context.Context, path, content string, category WriteCategory, contentType string) error {
	return s.deps.Writer.WriteFile(ctx, WriteFileRequest{
		Path:        path,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeChecksum(content),
	})
}

func (s *service) writeFeeds(ctx context.Context, docs []*interfaces.Document, generatedAt time.Time) (int, error) {
	items := buildFeedItems(s.cfg.BaseURL, docs, generatedAt)
	site := s.deps.Site
	if strings.TrimSpace(site.BaseURL) == "" {
		site.BaseURL = s.cfg.BaseURL
	}

	if err := s.writeArtifact(ctx, "feed.xml", buildRSSFeed(site, items, generatedAt), CategoryFeed, "application/rss+xml"); err != nil {
		return 0, err
	}
	if err := s.writeArtifact(ctx, "feed.atom.xml", buildAtomFeed(site, items, generatedAt), CategoryFeed, "application/atom+xml"); err != nil {
		return 1, err
	}
	return 2, nil
}

func (s *service) copyAssets(ctx context.Context) (int, error) {
	built := 0
	err := fs.WalkDir(s.deps.Assets, ".", func(entry string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(s.deps.Assets, entry)
		if err != nil {
			return err
		}
		if err := s.deps.Writer.WriteFile(ctx, WriteFileRequest{
			Path:        "assets/" + entry,
			Content:     strings.NewReader(string(data)),
			Size:        int64(len(data)),
			Category:    CategoryAsset,
			ContentType: detectAssetContentType(entry),
			Checksum:    computeChecksum(string(data)),
		}); err != nil {
			return err
		}
		built++
		return nil
	})
	if err != nil {
		return built, fmt.Errorf("generator: copy assets: %w", err)
	}
	return built, nil
}

func (s *service) navigation() layout.Navigation {
	nav := layout.Navigation{ListingURL: absoluteURL(s.cfg.BaseURL, routeFor(""))}
	if s.deps.URLs != nil {
		if url, err := s.deps.URLs.ListingURL(); err == nil {
			nav.ListingURL = url
		}
	}
	if s.cfg.GenerateFeeds {
		nav.FeedURL = absoluteURL(s.cfg.BaseURL, "/feed.xml")
	}
	return nav
}

func (s *service) effectiveWorkerCount(pending int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > pending {
		workers = pending
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func filterDocuments(docs []*interfaces.Document, slugs []string) []*interfaces.Document {
	if len(slugs) == 0 {
		return docs
	}
	wanted := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		wanted[strings.ToLower(strings.TrimSpace(slug))] = struct{}{}
	}
	filtered := make([]*interfaces.Document, 0, len(docs))
	for _, doc := range docs {
		if _, ok := wanted[doc.Slug]; ok {
			filtered = append(filtered, doc)
		}
	}
	return filtered
}

func computeChecksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
