package main

import (
	"context"
	"flag"
	"fmt"
	"html/template"
	"log"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the markdown content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
		baseURL    = flag.String("base-url", "http://localhost:8080", "Canonical site base URL used in links")
		slug       = flag.String("slug", "", "Slug of the article to preview")
		bodyOnly   = flag.Bool("body-only", false, "Print the rendered article body without the layout shell")
		logLevel   = flag.String("log-level", "warn", "Minimum log level")
	)

	flag.Parse()

	if *slug == "" {
		log.Fatalf("--slug is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		BaseURL:    *baseURL,
		LogLevel:   *logLevel,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	ctx := context.Background()
	if err := module.Module.Store().Reload(ctx); err != nil {
		log.Fatalf("load content: %v", err)
	}

	doc, err := module.Module.Store().Get(ctx, *slug)
	if err != nil {
		log.Fatalf("load article %s: %v", *slug, err)
	}

	html, err := module.Module.Renderer().RenderDocument(ctx, doc)
	if err != nil {
		log.Fatalf("render article %s: %v", *slug, err)
	}

	if *bodyOnly {
		fmt.Println(html)
		return
	}

	page, err := composePage(ctx, module, doc, html)
	if err != nil {
		log.Fatalf("compose page: %v", err)
	}
	fmt.Println(page)
}

func composePage(ctx context.Context, module *bootstrap.Module, doc *interfaces.Document, body string) (string, error) {
	return module.Module.Composer().Article(ctx, layout.PageContext{
		Article: &layout.ArticleView{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			Date:        doc.Metadata.Date,
			Authors:     doc.Metadata.Authors,
			Tags:        doc.Metadata.Tags,
			Content:     template.HTML(body),
		},
	})
}
