package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service renders article bodies to HTML. Component tags are extracted before
// Markdown conversion so goldmark never sees them; the placeholders left
// behind are HTML comments that survive conversion and are substituted with
// rendered component output afterwards.
type Service struct {
	componentParser interfaces.ComponentParser
	components      interfaces.ComponentService
	markdownParser  interfaces.MarkdownParser
	parseOptions    interfaces.ParseOptions
	logger          interfaces.Logger
}

// ServiceOption customises the render service.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParseOptions overrides the Markdown parse options applied to every document.
func WithParseOptions(opts interfaces.ParseOptions) ServiceOption {
	return func(s *Service) {
		s.parseOptions = opts
	}
}

// NewService constructs a render service from the component and Markdown layers.
func NewService(componentParser interfaces.ComponentParser, components interfaces.ComponentService, markdownParser interfaces.MarkdownParser, opts ...ServiceOption) *Service {
	service := &Service{
		componentParser: componentParser,
		components:      components,
		markdownParser:  markdownParser,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// RenderDocument converts the document body into final HTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("render: nil document")
	}
	return s.RenderBody(ctx, doc.SourcePath, doc.Body)
}

// RenderBody runs the full pipeline over raw Markdown source. The path is
// attached to syntax errors for diagnostics.
func (s *Service) RenderBody(ctx context.Context, path string, body []byte) (string, error) {
	if s.componentParser == nil || s.components == nil || s.markdownParser == nil {
		return "", fmt.Errorf("render: service not initialised")
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "render.body",
		"path":      path,
	})

	transformed, parsed, err := s.componentParser.Extract(string(body))
	if err != nil {
		logging.WithFields(logger, map[string]any{"error": err}).Error("render.extract_failed")
		return "", &markdown.SyntaxError{Path: path, Err: err}
	}

	htmlBytes, err := s.markdownParser.ParseWithOptions([]byte(transformed), s.parseOptions)
	if err != nil {
		err = attachPath(err, path)
		logging.WithFields(logger, map[string]any{"error": err}).Error("render.markdown_failed")
		return "", err
	}

	output := string(htmlBytes)
	for idx, pc := range parsed {
		rendered, err := s.components.Render(interfaces.ComponentContext{Context: ctx}, pc.Name, pc.Params, pc.Inner)
		if err != nil {
			logging.WithFields(logger, map[string]any{
				"component": pc.Name,
				"error":     err,
			}).Error("render.component_failed")
			return "", err
		}

		placeholder := fmt.Sprintf(interfaces.ComponentPlaceholderFormat, idx)
		output = strings.ReplaceAll(output, placeholder, string(rendered))
	}

	logging.WithFields(logger, map[string]any{
		"components": len(parsed),
	}).Debug("render.body_completed")
	return output, nil
}

func attachPath(err error, path string) error {
	var synErr *markdown.SyntaxError
	if errors.As(err, &synErr) && synErr.Path == "" {
		synErr.Path = path
	}
	return err
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}
