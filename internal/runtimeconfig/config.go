package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrSiteBaseURLRequired indicates the site base URL is missing.
var ErrSiteBaseURLRequired = errors.New("blog config: site base URL is required")

// ErrContentDirRequired indicates the content directory is missing.
var ErrContentDirRequired = errors.New("blog config: content directory is required")

// ErrThemesFeatureRequired indicates inconsistent theme configuration.
var ErrThemesFeatureRequired = errors.New("blog config: themes feature must be enabled to configure a default theme")

// ErrGeneratorOutputDirRequired indicates a static build without a destination.
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")

// ErrServerAddrRequired indicates the HTTP server has no listen address.
var ErrServerAddrRequired = errors.New("blog config: server address is required when server is enabled")

var ErrStorageProviderUnknown = errors.New("blog config: storage provider is invalid")
var ErrAdvancedCacheRequiresEnabledCache = errors.New("blog config: advanced cache feature requires cache to be enabled")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")
var ErrComponentCacheTTLInvalid = errors.New("blog config: component cache TTL must be zero or positive")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled    bool
	Site       SiteConfig
	Content    ContentConfig
	Markdown   MarkdownConfig
	Components ComponentConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Themes     ThemeConfig
	Server     ServerConfig
	Generator  GeneratorConfig
	Logging    LoggingConfig
	Features   Features
}

// SiteConfig describes the publication the module serves.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// ContentConfig captures filesystem behaviour for document ingestion.
type ContentConfig struct {
	Dir       string
	Pattern   string
	Recursive bool
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// ComponentConfig controls the component registry bootstrap.
type ComponentConfig struct {
	DisableBuiltins bool
	CacheTTL        time.Duration
	Definitions     []ComponentDefinitionConfig
}

// ComponentDefinitionConfig mirrors the minimal registration requirements for
// host-supplied components. Definitions are registered before the registry is
// frozen at bootstrap.
type ComponentDefinitionConfig struct {
	Name        string
	Description string
	Category    string
	Icon        string
	AllowInner  bool
	CacheTTL    time.Duration
	Template    string
	Params      []ComponentParamConfig
	Defaults    map[string]any
}

// ComponentParamConfig declares a single parameter accepted by a
// host-supplied component definition.
type ComponentParamConfig struct {
	Name     string
	Type     string
	Required bool
	Default  any
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
	DSN      string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for URL resolution.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	Group        string
	ListingRoute string
	ArticleRoute string
	SlugParam    string
}

// ThemeConfig captures configuration for the themes module.
type ThemeConfig struct {
	BasePath       string
	DefaultTheme   string
	DefaultVariant string
}

// ServerConfig captures behaviour for the HTTP surface.
type ServerConfig struct {
	Enabled      bool
	Addr         string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
	RenderTimeout   time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Themes        bool
	AdvancedCache bool
	Watch         bool
	Logger        bool
}

// DefaultConfig returns opinionated defaults for a file-backed blog.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title:    "Blog",
			BaseURL:  "http://localhost:8080",
			Language: "en",
		},
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
		},
		Components: ComponentConfig{
			CacheTTL: time.Minute,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{
			URLKit: URLKitResolverConfig{
				Group:        "blog",
				ListingRoute: "listing",
				ArticleRoute: "article",
				SlugParam:    "slug",
			},
		},
		Themes: ThemeConfig{
			BasePath: "themes",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			CopyAssets:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if !cfg.Features.Themes {
		if strings.TrimSpace(cfg.Themes.DefaultTheme) != "" {
			return ErrThemesFeatureRequired
		}
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if provider := normalizeProvider(cfg.Storage.Provider); provider != "" && !isSupportedStorage(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Components.CacheTTL < 0 {
		return ErrComponentCacheTTLInvalid
	}
	if cfg.Server.Enabled {
		if strings.TrimSpace(cfg.Server.Addr) == "" {
			return ErrServerAddrRequired
		}
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedStorage(provider string) bool {
	switch provider {
	case "memory", "bun":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
