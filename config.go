package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteBaseURLRequired               = runtimeconfig.ErrSiteBaseURLRequired
	ErrContentDirRequired                = runtimeconfig.ErrContentDirRequired
	ErrThemesFeatureRequired             = runtimeconfig.ErrThemesFeatureRequired
	ErrGeneratorOutputDirRequired        = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrServerAddrRequired                = runtimeconfig.ErrServerAddrRequired
	ErrStorageProviderUnknown            = runtimeconfig.ErrStorageProviderUnknown
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrComponentCacheTTLInvalid          = runtimeconfig.ErrComponentCacheTTLInvalid
)

type (
	Config                    = runtimeconfig.Config
	SiteConfig                = runtimeconfig.SiteConfig
	ContentConfig             = runtimeconfig.ContentConfig
	MarkdownConfig            = runtimeconfig.MarkdownConfig
	ComponentConfig           = runtimeconfig.ComponentConfig
	ComponentDefinitionConfig = runtimeconfig.ComponentDefinitionConfig
	ComponentParamConfig      = runtimeconfig.ComponentParamConfig
	StorageConfig             = runtimeconfig.StorageConfig
	CacheConfig               = runtimeconfig.CacheConfig
	NavigationConfig          = runtimeconfig.NavigationConfig
	URLKitResolverConfig      = runtimeconfig.URLKitResolverConfig
	ThemeConfig               = runtimeconfig.ThemeConfig
	ServerConfig              = runtimeconfig.ServerConfig
	GeneratorConfig           = runtimeconfig.GeneratorConfig
	LoggingConfig             = runtimeconfig.LoggingConfig
	Features                  = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
