package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func docWithDate(slug string, date time.Time) *interfaces.Document {
	return &interfaces.Document{
		Slug: slug,
		Metadata: interfaces.Metadata{
			Title: slug,
			Date:  date,
		},
	}
}

func TestBuildFeedItemsOrdering(t *testing.T) {
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	docs := []*interfaces.Document{
		docWithDate("older", now.AddDate(0, -2, 0)),
		docWithDate("newest", now),
		docWithDate("middle", now.AddDate(0, -1, 0)),
		docWithDate("newest", now), // duplicate slug is dropped
	}

	items := buildFeedItems("https://bucketbyte.com", docs, now)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"newest", "middle", "older"}
	for i, item := range items {
		if item.GUID != want[i] {
			t.Fatalf("expected %q at position %d, got %q", want[i], i, item.GUID)
		}
	}
	if items[0].Link != "https://bucketbyte.com/blog/newest" {
		t.Fatalf("unexpected link %q", items[0].Link)
	}
}

func TestBuildRSSFeedEscapesContent(t *testing.T) {
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	items := []feedItem{{
		Title:       "Tags & <Angles>",
		Link:        "https://bucketbyte.com/blog/tags",
		GUID:        "tags",
		PublishedAt: now,
	}}

	feed := buildRSSFeed(layout.SiteInfo{Title: "BucketByte", BaseURL: "https://bucketbyte.com"}, items, now)
	if !strings.Contains(feed, "Tags &amp; &lt;Angles&gt;") {
		t.Fatalf("expected escaped title\n%s", feed)
	}
}

func TestBuildSitemapDeduplicatesRoutes(t *testing.T) {
	now := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	pages := []RenderedPage{
		{Route: "/blog/a", LastModified: now},
		{Route: "/blog/a", LastModified: now},
		{Route: "/blog/b"},
	}

	sitemap := buildSitemap("https://bucketbyte.com", pages, now)
	if strings.Count(sitemap, "<loc>https://bucketbyte.com/blog/a</loc>") != 1 {
		t.Fatalf("expected deduplicated entries\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<loc>https://bucketbyte.com/blog/b</loc>") {
		t.Fatalf("expected second entry\n%s", sitemap)
	}
}
