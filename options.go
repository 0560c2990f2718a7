package blog

import "github.com/goliatone/go-blog/internal/di"

// Re-exported DI overrides so host applications can customise wiring without
// reaching into internal packages.
var (
	WithLoggerProvider      = di.WithLoggerProvider
	WithBunDB               = di.WithBunDB
	WithCache               = di.WithCache
	WithComponentCache      = di.WithComponentCache
	WithContentFS           = di.WithContentFS
	WithTemplateFS          = di.WithTemplateFS
	WithAssetFS             = di.WithAssetFS
	WithArtifactWriter      = di.WithArtifactWriter
	WithThemeManifestLoader = di.WithThemeManifestLoader
	WithArticleRepository   = di.WithArticleRepository
	WithMetadataSchema      = di.WithMetadataSchema
)
