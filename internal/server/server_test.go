package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/internal/components"
	"github.com/goliatone/go-blog/internal/components/parser"
	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/internal/store"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func testContent() fstest.MapFS {
	return fstest.MapFS{
		"hello-world.md": &fstest.MapFile{Data: []byte(`---
title: Hello World
date: 2024-09-25
published: true
tags: [intro]
---

First paragraph with **bold** text.

<Callout type="info">
Worth knowing.
</Callout>
`)},
		"broken-component.md": &fstest.MapFile{Data: []byte(`---
title: Broken
date: 2024-10-01
published: true
---

<Spotlight id="x" />
`)},
		"draft-notes.md": &fstest.MapFile{Data: []byte(`---
title: Draft Notes
date: 2024-11-01
---

Not announced yet.
`)},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	loader := markdown.NewLoader(testContent(), markdown.LoaderConfig{Recursive: true})
	docs := store.NewService(loader, store.NewMemoryArticleRepository())
	if err := docs.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	registry := components.NewRegistry(components.NewValidator())
	for _, def := range components.BuiltInDefinitions() {
		if err := registry.Register(def); err != nil {
			t.Fatalf("register builtin %s: %v", def.Name, err)
		}
	}
	registry.Freeze()
	componentSvc := components.NewService(registry, components.NewRenderer(registry, components.NewValidator()))

	renderer := render.NewService(parser.NewMDXParser(), componentSvc, markdown.NewGoldmarkParser(interfaces.ParseOptions{}))

	composer, err := layout.NewComposer(layout.SiteInfo{
		Title:   "BucketByte",
		BaseURL: "https://bucketbyte.com",
	})
	if err != nil {
		t.Fatalf("new composer: %v", err)
	}

	urls := layout.NewURLResolver(layout.URLResolverOptions{
		Manager: urlkit.NewRouteManager(&urlkit.Config{
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
		}),
	})

	return New(Config{Addr: ":0"}, docs, renderer, composer, urls)
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServerListing(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/blog")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `href="https://bucketbyte.com/blog/hello-world"`) {
		t.Fatalf("expected article link\n%s", body)
	}
	if strings.Contains(body, "draft-notes") {
		t.Fatalf("expected draft to stay out of the listing\n%s", body)
	}
}

func TestServerArticle(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/blog/hello-world")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown\n%s", body)
	}
	if !strings.Contains(body, "component--callout-info") {
		t.Fatalf("expected rendered component\n%s", body)
	}
	if strings.Contains(body, "<!-- component:") {
		t.Fatalf("expected placeholders to be substituted\n%s", body)
	}
}

func TestServerArticleServesDrafts(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/blog/draft-notes")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected drafts to resolve by direct link, got %d", rec.Code)
	}
}

func TestServerArticleNotFound(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/blog/no-such-post")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "That article does not exist.") {
		t.Fatalf("expected error page body\n%s", rec.Body.String())
	}
}

func TestServerArticleRenderFailure(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/blog/broken-component")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This article could not be rendered.") {
		t.Fatalf("expected render failure page\n%s", rec.Body.String())
	}
}

func TestServerRootRedirect(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/")
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/blog" {
		t.Fatalf("expected redirect to /blog, got %q", got)
	}
}

func TestServerHealth(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := get(t, handler, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health payload %s", rec.Body.String())
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base, suffix, want string
	}{
		{"", "", "/"},
		{"", "blog", "/blog"},
		{"/site/", "blog", "/site/blog"},
		{"site", "", "/site"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.suffix); got != tc.want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", tc.base, tc.suffix, got, tc.want)
		}
	}
}
