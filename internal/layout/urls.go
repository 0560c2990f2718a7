package layout

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLResolverOptions configures the go-urlkit backed resolver.
type URLResolverOptions struct {
	Manager      *urlkit.RouteManager
	Group        string
	ListingRoute string
	ArticleRoute string
	SlugParam    string
}

// URLResolver builds listing and article URLs using a go-urlkit RouteManager.
type URLResolver struct {
	manager *urlkit.RouteManager

	group        string
	listingRoute string
	articleRoute string
	slugParam    string

	mu          sync.RWMutex
	cachedGroup *urlkit.Group
}

// NewURLResolver constructs a resolver backed by go-urlkit.
func NewURLResolver(opts URLResolverOptions) *URLResolver {
	if strings.TrimSpace(opts.Group) == "" {
		opts.Group = "blog"
	}
	if strings.TrimSpace(opts.ListingRoute) == "" {
		opts.ListingRoute = "listing"
	}
	if strings.TrimSpace(opts.ArticleRoute) == "" {
		opts.ArticleRoute = "article"
	}
	if strings.TrimSpace(opts.SlugParam) == "" {
		opts.SlugParam = "slug"
	}

	return &URLResolver{
		manager:      opts.Manager,
		group:        strings.TrimSpace(opts.Group),
		listingRoute: strings.TrimSpace(opts.ListingRoute),
		articleRoute: strings.TrimSpace(opts.ArticleRoute),
		slugParam:    opts.SlugParam,
	}
}

// ListingURL returns the absolute URL of the article listing.
func (r *URLResolver) ListingURL() (string, error) {
	return r.build(r.listingRoute, nil)
}

// ArticleURL returns the absolute URL for a single article.
func (r *URLResolver) ArticleURL(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("layout: article slug required")
	}
	return r.build(r.articleRoute, map[string]any{r.slugParam: slug})
}

func (r *URLResolver) build(route string, params map[string]any) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("layout: route manager not configured")
	}

	group, err := r.routeGroup()
	if err != nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, route)
	if err != nil {
		return "", err
	}

	for key, val := range params {
		builder.WithParam(key, val)
	}

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

func (r *URLResolver) routeGroup() (*urlkit.Group, error) {
	r.mu.RLock()
	group := r.cachedGroup
	r.mu.RUnlock()
	if group != nil {
		return group, nil
	}

	group, err := lookupGroup(r.manager, r.group)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cachedGroup = group
	r.mu.Unlock()
	return group, nil
}

// safeBuilder guards against urlkit panicking on unknown route names.
func (r *URLResolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("layout: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("layout: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("layout: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("layout: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
