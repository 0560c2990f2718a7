package di

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	memorycache "github.com/goliatone/go-blog/internal/adapters/memory"
	"github.com/goliatone/go-blog/internal/adapters/noop"
	"github.com/goliatone/go-blog/internal/components"
	"github.com/goliatone/go-blog/internal/components/parser"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/internal/store"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Container wires the blog services together from a validated configuration.
// Hosts override individual collaborators through Options; everything left
// unset falls back to in-process defaults so the module boots without
// external infrastructure.
type Container struct {
	config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	componentCache interfaces.CacheProvider

	contentFS      fs.FS
	templateFS     fs.FS
	assetFS        fs.FS
	artifactWriter generator.ArtifactWriter
	manifestLoader layout.ManifestLoader
	metadataSchema map[string]any

	bunDB         *bun.DB
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	articleRepo   store.ArticleRepository

	loader       *markdown.Loader
	docStore     *store.Service
	registry     *components.Registry
	componentSvc *components.Service
	renderSvc    *render.Service

	routeManager  *urlkit.RouteManager
	urlResolver   *layout.URLResolver
	themeSelector *layout.ThemeSelector
	themeContext  layout.ThemeContext
	composer      *layout.Composer

	httpServer   *server.Server
	generatorSvc generator.Service
}

// Option customises container construction.
type Option func(*Container)

// WithLoggerProvider injects a host-managed logger provider, bypassing the
// provider selection driven by the logging configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies the database handle used when the storage provider is "bun".
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithComponentCache overrides the cache used for rendered component output.
func WithComponentCache(cache interfaces.CacheProvider) Option {
	return func(c *Container) {
		if cache != nil {
			c.componentCache = cache
		}
	}
}

// WithContentFS replaces the content directory with an arbitrary filesystem.
// Useful for embedded content and tests.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithTemplateFS supplies layout template overrides.
func WithTemplateFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.templateFS = fsys
	}
}

// WithAssetFS supplies static assets copied verbatim during generator builds.
func WithAssetFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.assetFS = fsys
	}
}

// WithArtifactWriter overrides where the generator writes build outputs.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.artifactWriter = writer
	}
}

// WithThemeManifestLoader overrides how theme manifests are discovered.
func WithThemeManifestLoader(loader layout.ManifestLoader) Option {
	return func(c *Container) {
		c.manifestLoader = loader
	}
}

// WithArticleRepository injects a custom persistence layer for parsed articles.
func WithArticleRepository(repo store.ArticleRepository) Option {
	return func(c *Container) {
		c.articleRepo = repo
	}
}

// WithMetadataSchema replaces the built-in front-matter validation schema.
func WithMetadataSchema(schema map[string]any) Option {
	return func(c *Container) {
		c.metadataSchema = schema
	}
}

// NewContainer validates the configuration, applies options, and builds the
// full service graph. Construction is eager so wiring mistakes surface at
// boot rather than on first request.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureStore()
	if err := c.configureComponents(); err != nil {
		return nil, err
	}
	c.configureRendering()
	c.configureNavigation()
	if err := c.configureThemes(); err != nil {
		return nil, err
	}
	if err := c.configureComposer(); err != nil {
		return nil, err
	}
	c.configureServer()
	c.configureGenerator()

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.config.Logging.Level,
			Format:    c.config.Logging.Format,
			AddSource: c.config.Logging.AddSource,
			Focus:     c.config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: consoleLevel(c.config.Logging.Level),
		})
	}
	return nil
}

// configureCacheDefaults provisions the component output cache and, when the
// cache feature is on, the repository-level cache service. A cache service
// construction failure downgrades to uncached repositories instead of
// failing the boot.
func (c *Container) configureCacheDefaults() {
	if !c.config.Cache.Enabled {
		if c.componentCache == nil {
			c.componentCache = noop.Cache()
		}
		return
	}

	if c.componentCache == nil {
		c.componentCache = memorycache.NewCache()
	}

	if c.cacheService == nil {
		ttl := c.config.Cache.DefaultTTL
		if ttl <= 0 {
			ttl = time.Minute
		}
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = ttl
		if service, err := repocache.NewCacheService(cacheCfg); err == nil {
			c.cacheService = service
		} else {
			c.logger("blog.di").Warn("blog.cache_service_unavailable", "error", err)
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStore() {
	filesystem := c.contentFS
	if filesystem == nil {
		filesystem = os.DirFS(c.config.Content.Dir)
	}
	c.loader = markdown.NewLoader(filesystem, markdown.LoaderConfig{
		Pattern:   c.config.Content.Pattern,
		Recursive: c.config.Content.Recursive,
	})

	if c.articleRepo == nil {
		if strings.EqualFold(strings.TrimSpace(c.config.Storage.Provider), "bun") && c.bunDB != nil {
			if c.cacheService != nil && c.keySerializer != nil {
				c.articleRepo = store.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			} else {
				c.articleRepo = store.NewBunArticleRepository(c.bunDB)
			}
		} else {
			c.articleRepo = store.NewMemoryArticleRepository()
		}
	}

	storeOpts := []store.ServiceOption{store.WithLogger(logging.StoreLogger(c.loggerProvider))}
	if c.metadataSchema != nil {
		storeOpts = append(storeOpts, store.WithCustomSchema(c.metadataSchema))
	}
	c.docStore = store.NewService(c.loader, c.articleRepo, storeOpts...)
}

func (c *Container) configureComponents() error {
	registry := components.NewRegistry(components.NewValidator())

	if !c.config.Components.DisableBuiltins {
		for _, def := range components.BuiltInDefinitions() {
			if def.CacheTTL == 0 {
				def.CacheTTL = c.config.Components.CacheTTL
			}
			if err := registry.Register(def); err != nil {
				return fmt.Errorf("di: register builtin component %s: %w", def.Name, err)
			}
		}
	}

	for _, defCfg := range c.config.Components.Definitions {
		def, err := componentDefinition(defCfg, c.config.Components.CacheTTL)
		if err != nil {
			return err
		}
		if err := registry.Register(def); err != nil {
			return fmt.Errorf("di: register component %s: %w", def.Name, err)
		}
	}
	registry.Freeze()
	c.registry = registry

	renderer := components.NewRenderer(registry, components.NewValidator(),
		components.WithRendererCache(c.componentCache))
	c.componentSvc = components.NewService(registry, renderer,
		components.WithDefaultCache(c.componentCache),
		components.WithLogger(c.logger("blog.components")))
	return nil
}

func (c *Container) configureRendering() {
	parseOpts := interfaces.ParseOptions{
		Extensions: c.config.Markdown.Extensions,
		Sanitize:   c.config.Markdown.Sanitize,
		HardWraps:  c.config.Markdown.HardWraps,
		SafeMode:   c.config.Markdown.SafeMode,
	}
	c.renderSvc = render.NewService(
		parser.NewMDXParser(),
		c.componentSvc,
		markdown.NewGoldmarkParser(parseOpts),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
		render.WithParseOptions(parseOpts),
	)
}

func (c *Container) configureNavigation() {
	resolver := c.config.Navigation.URLKit
	routeCfg := c.config.Navigation.RouteConfig
	if routeCfg == nil {
		routeCfg = defaultRouteConfig(c.config.Site.BaseURL, resolver)
	}

	c.routeManager = urlkit.NewRouteManager(routeCfg)
	c.urlResolver = layout.NewURLResolver(layout.URLResolverOptions{
		Manager:      c.routeManager,
		Group:        resolver.Group,
		ListingRoute: resolver.ListingRoute,
		ArticleRoute: resolver.ArticleRoute,
		SlugParam:    resolver.SlugParam,
	})
}

func (c *Container) configureThemes() error {
	if !c.config.Features.Themes {
		return nil
	}

	c.themeSelector = layout.NewThemeSelector(layout.ThemeOptions{
		BasePath:       c.config.Themes.BasePath,
		DefaultTheme:   c.config.Themes.DefaultTheme,
		DefaultVariant: c.config.Themes.DefaultVariant,
		Loader:         c.manifestLoader,
	})

	selection, err := c.themeSelector.Selection("", "")
	if err != nil {
		return fmt.Errorf("di: resolve default theme: %w", err)
	}
	c.themeContext = c.themeSelector.Context(selection)
	return nil
}

func (c *Container) configureComposer() error {
	composerOpts := []layout.ComposerOption{
		layout.WithComposerLogger(c.logger("blog.layout")),
	}
	if c.templateFS != nil {
		composerOpts = append(composerOpts, layout.WithTemplateFS(c.templateFS))
	}

	composer, err := layout.NewComposer(c.siteInfo(), composerOpts...)
	if err != nil {
		return fmt.Errorf("di: build composer: %w", err)
	}
	c.composer = composer
	return nil
}

func (c *Container) configureServer() {
	if !c.config.Server.Enabled {
		return
	}
	c.httpServer = server.New(server.Config{
		Addr:         c.config.Server.Addr,
		BasePath:     c.config.Server.BasePath,
		ReadTimeout:  c.config.Server.ReadTimeout,
		WriteTimeout: c.config.Server.WriteTimeout,
	}, c.docStore, c.renderSvc, c.composer, c.urlResolver,
		server.WithLogger(logging.ServerLogger(c.loggerProvider)),
		server.WithThemeContext(c.themeContext))
}

func (c *Container) configureGenerator() {
	if !c.config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return
	}
	c.generatorSvc = generator.NewService(generator.Config{
		OutputDir:       c.config.Generator.OutputDir,
		BaseURL:         c.config.Site.BaseURL,
		CleanBuild:      c.config.Generator.CleanBuild,
		CopyAssets:      c.config.Generator.CopyAssets,
		GenerateSitemap: c.config.Generator.GenerateSitemap,
		GenerateRobots:  c.config.Generator.GenerateRobots,
		GenerateFeeds:   c.config.Generator.GenerateFeeds,
		Workers:         c.config.Generator.Workers,
		RenderTimeout:   c.config.Generator.RenderTimeout,
	}, generator.Dependencies{
		Store:    c.docStore,
		Renderer: c.renderSvc,
		Composer: c.composer,
		URLs:     c.urlResolver,
		Theme:    c.themeContext,
		Site:     c.siteInfo(),
		Assets:   c.assetFS,
		Writer:   c.artifactWriter,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	})
}

func (c *Container) siteInfo() layout.SiteInfo {
	return layout.SiteInfo{
		Title:       c.config.Site.Title,
		Description: c.config.Site.Description,
		BaseURL:     c.config.Site.BaseURL,
		Author:      c.config.Site.Author,
		Language:    c.config.Site.Language,
	}
}

func (c *Container) logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// Config returns the configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config { return c.config }

// LoggerProvider exposes the provider selected during construction.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Store returns the document store backing the listing and article routes.
func (c *Container) Store() interfaces.DocumentStore { return c.docStore }

// Loader exposes the Markdown loader used during reloads.
func (c *Container) Loader() *markdown.Loader { return c.loader }

// Components exposes the component orchestration service.
func (c *Container) Components() interfaces.ComponentService { return c.componentSvc }

// Registry exposes the frozen component registry.
func (c *Container) Registry() interfaces.ComponentRegistry { return c.registry }

// Renderer exposes the full document rendering pipeline.
func (c *Container) Renderer() *render.Service { return c.renderSvc }

// Composer exposes the layout composer.
func (c *Container) Composer() *layout.Composer { return c.composer }

// URLs exposes the route resolver.
func (c *Container) URLs() *layout.URLResolver { return c.urlResolver }

// RouteManager exposes the underlying urlkit manager.
func (c *Container) RouteManager() *urlkit.RouteManager { return c.routeManager }

// ThemeContext returns the resolved default theme. The zero value is an
// inert context when themes are disabled.
func (c *Container) ThemeContext() layout.ThemeContext { return c.themeContext }

// ThemeSelector returns the theme selector, nil when themes are disabled.
func (c *Container) ThemeSelector() *layout.ThemeSelector { return c.themeSelector }

// Server returns the HTTP surface, nil when the server is disabled.
func (c *Container) Server() *server.Server { return c.httpServer }

// Generator returns the static site generator. When the generator is
// disabled a service failing with ErrServiceDisabled is returned.
func (c *Container) Generator() generator.Service { return c.generatorSvc }

// CacheService exposes the repository cache service, nil when caching is off.
func (c *Container) CacheService() repocache.CacheService { return c.cacheService }

// ComponentCache exposes the cache used for rendered component output.
func (c *Container) ComponentCache() interfaces.CacheProvider { return c.componentCache }

func defaultRouteConfig(baseURL string, resolver runtimeconfig.URLKitResolverConfig) *urlkit.Config {
	group := strings.TrimSpace(resolver.Group)
	if group == "" {
		group = "blog"
	}
	listing := strings.TrimSpace(resolver.ListingRoute)
	if listing == "" {
		listing = "listing"
	}
	article := strings.TrimSpace(resolver.ArticleRoute)
	if article == "" {
		article = "article"
	}
	slugParam := strings.TrimSpace(resolver.SlugParam)
	if slugParam == "" {
		slugParam = "slug"
	}

	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    group,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					listing: "/blog",
					article: "/blog/:" + slugParam,
				},
			},
		},
	}
}

func componentDefinition(cfg runtimeconfig.ComponentDefinitionConfig, defaultTTL time.Duration) (interfaces.ComponentDefinition, error) {
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		return interfaces.ComponentDefinition{}, errors.New("di: component definition requires a name")
	}
	if strings.TrimSpace(cfg.Template) == "" {
		return interfaces.ComponentDefinition{}, fmt.Errorf("di: component %s requires a template", name)
	}

	params := make([]interfaces.ComponentParam, 0, len(cfg.Params))
	for _, param := range cfg.Params {
		paramType, err := componentParamType(param.Type)
		if err != nil {
			return interfaces.ComponentDefinition{}, fmt.Errorf("di: component %s: %w", name, err)
		}
		params = append(params, interfaces.ComponentParam{
			Name:     param.Name,
			Type:     paramType,
			Required: param.Required,
			Default:  param.Default,
		})
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return interfaces.ComponentDefinition{
		Name:        name,
		Description: cfg.Description,
		Category:    cfg.Category,
		Icon:        cfg.Icon,
		AllowInner:  cfg.AllowInner,
		CacheTTL:    ttl,
		Template:    cfg.Template,
		Schema: interfaces.ComponentSchema{
			Params:   params,
			Defaults: cfg.Defaults,
		},
	}, nil
}

func componentParamType(raw string) (interfaces.ComponentParamType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "string":
		return interfaces.ComponentParamString, nil
	case "int":
		return interfaces.ComponentParamInt, nil
	case "bool":
		return interfaces.ComponentParamBool, nil
	case "array":
		return interfaces.ComponentParamArray, nil
	case "url":
		return interfaces.ComponentParamURL, nil
	default:
		return "", fmt.Errorf("unsupported component param type %q", raw)
	}
}

func consoleLevel(raw string) *console.Level {
	var level console.Level
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		level = console.LevelTrace
	case "debug":
		level = console.LevelDebug
	case "info":
		level = console.LevelInfo
	case "warn", "warning":
		level = console.LevelWarn
	case "error":
		level = console.LevelError
	case "fatal":
		level = console.LevelFatal
	default:
		return nil
	}
	return &level
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
