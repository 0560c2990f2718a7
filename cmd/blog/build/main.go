package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		contentDir = flag.String("content-dir", "content", "Path to the markdown content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
		baseURL    = flag.String("base-url", "http://localhost:8080", "Canonical site base URL used in links and feeds")
		title      = flag.String("title", "Blog", "Site title rendered in layouts and feeds")
		author     = flag.String("author", "", "Site author shown in the footer")
		outputDir  = flag.String("output", "dist", "Directory receiving the generated site")
		theme      = flag.String("theme", "", "Theme name to apply (enables the themes feature)")
		themesDir  = flag.String("themes-dir", "themes", "Directory containing theme manifests")
		slugs      = flag.String("slugs", "", "Comma separated slugs to rebuild (defaults to everything)")
		dryRun     = flag.Bool("dry-run", false, "Render without writing any output")
		clean      = flag.Bool("clean", true, "Remove the output directory before writing")
		workers    = flag.Int("workers", 0, "Render worker count (defaults to the CPU count)")
		logLevel   = flag.String("log-level", "info", "Minimum log level")
	)

	flag.Parse()

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		Pattern:         *pattern,
		Recursive:       true,
		BaseURL:         *baseURL,
		SiteTitle:       *title,
		SiteAuthor:      *author,
		Theme:           *theme,
		ThemesDir:       *themesDir,
		LogLevel:        *logLevel,
		EnableGenerator: true,
		OutputDir:       *outputDir,
		CleanBuild:      *clean,
		Workers:         *workers,
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}

	ctx := context.Background()
	result, err := module.Module.Generator().Build(ctx, blog.BuildOptions{
		Slugs:  bootstrap.SplitSlugs(*slugs),
		DryRun: *dryRun,
	})
	if err != nil {
		module.Logger.Error("build failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("built %d pages, %d assets, %d feeds in %s\n",
		result.PagesBuilt, result.AssetsBuilt, result.FeedsBuilt, result.Duration)
	if result.DryRun {
		fmt.Println("dry run: no files were written")
	}
}
