package layout

import (
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
)

func newTestManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "blog",
				BaseURL: "https://bucketbyte.com",
				Paths: map[string]string{
					"listing": "/blog",
					"article": "/blog/:slug",
				},
			},
		},
	})
}

func TestURLResolverListing(t *testing.T) {
	resolver := NewURLResolver(URLResolverOptions{Manager: newTestManager()})

	url, err := resolver.ListingURL()
	if err != nil {
		t.Fatalf("listing url: %v", err)
	}
	if url != "https://bucketbyte.com/blog" {
		t.Fatalf("unexpected listing url %q", url)
	}
}

func TestURLResolverArticle(t *testing.T) {
	resolver := NewURLResolver(URLResolverOptions{Manager: newTestManager()})

	url, err := resolver.ArticleURL("hello-world")
	if err != nil {
		t.Fatalf("article url: %v", err)
	}
	if url != "https://bucketbyte.com/blog/hello-world" {
		t.Fatalf("unexpected article url %q", url)
	}
}

func TestURLResolverBlankSlug(t *testing.T) {
	resolver := NewURLResolver(URLResolverOptions{Manager: newTestManager()})

	if _, err := resolver.ArticleURL("  "); err == nil {
		t.Fatal("expected blank slug to fail")
	}
}

func TestURLResolverMissingGroup(t *testing.T) {
	resolver := NewURLResolver(URLResolverOptions{
		Manager: newTestManager(),
		Group:   "nope",
	})

	if _, err := resolver.ListingURL(); err == nil {
		t.Fatal("expected unknown group to fail")
	}
}

func TestURLResolverNilManager(t *testing.T) {
	resolver := NewURLResolver(URLResolverOptions{})

	if _, err := resolver.ListingURL(); err == nil {
		t.Fatal("expected nil manager to fail")
	}
}
