package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures the shared configuration knobs for the blog CLI tools.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	BaseURL        string
	SiteTitle      string
	SiteAuthor     string
	Theme          string
	ThemesDir      string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider

	// Server settings, honoured when EnableServer is set.
	EnableServer bool
	Addr         string

	// Generator settings, honoured when EnableGenerator is set.
	EnableGenerator bool
	OutputDir       string
	CleanBuild      bool
	Workers         int
}

// Module wraps the blog module with the logger the CLI should use.
type Module struct {
	Module *blog.Module
	Logger interfaces.Logger
}

// BuildModule constructs a blog module configured for CLI usage.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Content.Pattern = pattern
	}
	cfg.Content.Recursive = opts.Recursive

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.Site.BaseURL = base
	}
	if title := strings.TrimSpace(opts.SiteTitle); title != "" {
		cfg.Site.Title = title
	}
	if author := strings.TrimSpace(opts.SiteAuthor); author != "" {
		cfg.Site.Author = author
	}

	if theme := strings.TrimSpace(opts.Theme); theme != "" {
		cfg.Features.Themes = true
		cfg.Themes.DefaultTheme = theme
		if dir := strings.TrimSpace(opts.ThemesDir); dir != "" {
			cfg.Themes.BasePath = dir
		}
	}

	if opts.EnableServer {
		cfg.Server.Enabled = true
		if addr := strings.TrimSpace(opts.Addr); addr != "" {
			cfg.Server.Addr = addr
		}
	}

	if opts.EnableGenerator {
		cfg.Generator.Enabled = true
		if out := strings.TrimSpace(opts.OutputDir); out != "" {
			cfg.Generator.OutputDir = out
		}
		cfg.Generator.CleanBuild = opts.CleanBuild
		if opts.Workers > 0 {
			cfg.Generator.Workers = opts.Workers
		}
	}

	diOpts := []blog.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, blog.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Container().LoggerProvider().GetLogger("cli"),
	}, nil
}

// SplitSlugs parses a comma separated slug list into a trimmed slice.
func SplitSlugs(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	slugs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			slugs = append(slugs, trimmed)
		}
	}
	return slugs
}
