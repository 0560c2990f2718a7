package layout

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SiteInfo carries the site-wide values every composed page receives.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// Navigation holds the resolved links rendered into the page shell.
type Navigation struct {
	ListingURL string
	FeedURL    string
}

// ArticleView is the data contract for a single article page.
type ArticleView struct {
	Title       string
	Description string
	Date        time.Time
	Authors     []string
	Tags        []string
	URL         string
	Content     template.HTML
}

// ListingItem is one entry on the article listing page.
type ListingItem struct {
	Title       string
	Description string
	URL         string
	Date        time.Time
	Tags        []string
}

// ErrorView is the data contract for the error boundary page.
type ErrorView struct {
	Status  int
	Title   string
	Message string
}

// PageContext is the full data set handed to page templates.
type PageContext struct {
	Site        SiteInfo
	Theme       ThemeContext
	Nav         Navigation
	Style       template.CSS
	GeneratedAt time.Time
	Article     *ArticleView
	Items       []ListingItem
	Error       *ErrorView
}

var viewNames = []string{"listing", "article", "error"}

// Composer assembles full HTML pages from rendered article bodies.
type Composer struct {
	site      SiteInfo
	views     map[string]*template.Template
	overrides fs.FS
	logger    interfaces.Logger
}

type ComposerOption func(*Composer)

// WithTemplateFS overlays view templates from the provided filesystem.
// Files are matched by view name, e.g. article.tmpl replaces the article view.
func WithTemplateFS(fsys fs.FS) ComposerOption {
	return func(c *Composer) {
		c.overrides = fsys
	}
}

func WithComposerLogger(logger interfaces.Logger) ComposerOption {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewComposer(site SiteInfo, opts ...ComposerOption) (*Composer, error) {
	c := &Composer{
		site:   site,
		views:  make(map[string]*template.Template, len(viewNames)),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, name := range viewNames {
		tmpl, err := c.parseView(name)
		if err != nil {
			return nil, err
		}
		c.views[name] = tmpl
	}
	return c, nil
}

func (c *Composer) parseView(name string) (*template.Template, error) {
	tmpl, err := template.New("base").Funcs(templateFuncs()).Parse(baseTemplate)
	if err != nil {
		return nil, fmt.Errorf("layout: parse base template: %w", err)
	}

	source := defaultViewTemplates[name]
	if c.overrides != nil {
		if raw, err := fs.ReadFile(c.overrides, name+".tmpl"); err == nil {
			source = string(raw)
		}
	}

	if _, err := tmpl.Parse(source); err != nil {
		return nil, fmt.Errorf("layout: parse %s template: %w", name, err)
	}
	return tmpl, nil
}

// Listing composes the article index page.
func (c *Composer) Listing(ctx context.Context, page PageContext) (string, error) {
	return c.compose(ctx, "listing", page)
}

// Article composes a single article page.
func (c *Composer) Article(ctx context.Context, page PageContext) (string, error) {
	if page.Article == nil {
		return "", fmt.Errorf("layout: article view data required")
	}
	return c.compose(ctx, "article", page)
}

// ErrorPage composes the error boundary page.
func (c *Composer) ErrorPage(ctx context.Context, page PageContext) (string, error) {
	if page.Error == nil {
		return "", fmt.Errorf("layout: error view data required")
	}
	return c.compose(ctx, "error", page)
}

func (c *Composer) compose(ctx context.Context, view string, page PageContext) (string, error) {
	tmpl, ok := c.views[view]
	if !ok {
		return "", fmt.Errorf("layout: unknown view %q", view)
	}

	if page.Site == (SiteInfo{}) {
		page.Site = c.site
	}
	if page.Style == "" {
		page.Style = styleBlock(page.Theme.CSSVars)
	}
	if page.GeneratedAt.IsZero() {
		page.GeneratedAt = time.Now().UTC()
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		c.logger.WithContext(ctx).Error("layout.compose_failed", "view", view, "error", err)
		return "", fmt.Errorf("layout: compose %s: %w", view, err)
	}
	return buf.String(), nil
}

// styleBlock flattens theme CSS variables into a deterministic :root block.
func styleBlock(vars map[string]string) template.CSS {
	if len(vars) == 0 {
		return ""
	}
	normalized := make(map[string]string, len(vars))
	names := make([]string, 0, len(vars))
	for key, value := range vars {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		normalized[name] = value
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString(":root {")
	for _, name := range names {
		builder.WriteString(fmt.Sprintf(" %s: %s;", name, normalized[name]))
	}
	builder.WriteString(" }")
	return template.CSS(builder.String())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date": func(ts time.Time, layout string) string {
			if ts.IsZero() {
				return ""
			}
			return ts.Format(layout)
		},
		"join": strings.Join,
	}
}
