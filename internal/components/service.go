package components

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	parserpkg "github.com/goliatone/go-blog/internal/components/parser"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service orchestrates component parsing and rendering for arbitrary content.
type Service struct {
	registry         interfaces.ComponentRegistry
	renderer         interfaces.ComponentRenderer
	parser           interfaces.ComponentParser
	defaultSanitizer interfaces.ComponentSanitizer
	defaultCache     interfaces.CacheProvider
	logger           interfaces.Logger
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithDefaultSanitizer overrides the fallback sanitizer used when none is supplied at call time.
func WithDefaultSanitizer(sanitizer interfaces.ComponentSanitizer) ServiceOption {
	return func(s *Service) {
		if sanitizer != nil {
			s.defaultSanitizer = sanitizer
		}
	}
}

// WithDefaultCache overrides the fallback cache provider used when none is supplied at call time.
func WithDefaultCache(cache interfaces.CacheProvider) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.defaultCache = cache
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser overrides the component tag parser.
func WithParser(parser interfaces.ComponentParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewService constructs a component service using the supplied registry and renderer.
func NewService(registry interfaces.ComponentRegistry, renderer interfaces.ComponentRenderer, opts ...ServiceOption) *Service {
	service := &Service{
		registry:         registry,
		renderer:         renderer,
		parser:           parserpkg.NewMDXParser(),
		defaultSanitizer: NewSanitizer(),
		logger:           logging.NoOp(),
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Process renders any components found within the content string, returning the resulting HTML.
func (s *Service) Process(ctx context.Context, content string, opts interfaces.ComponentProcessOptions) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if s.renderer == nil || s.parser == nil {
		return "", fmt.Errorf("component: service not initialised")
	}

	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "component.process",
	})

	transformed, parsed, err := s.parser.Extract(content)
	if err != nil {
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("component.service.parse_failed")
		return "", err
	}
	if len(parsed) == 0 {
		return transformed, nil
	}

	componentCtx := interfaces.ComponentContext{
		Context:   ctx,
		Cache:     opts.Cache,
		Sanitizer: opts.Sanitizer,
	}
	if componentCtx.Context == nil {
		componentCtx.Context = context.Background()
	}
	if componentCtx.Sanitizer == nil {
		componentCtx.Sanitizer = s.defaultSanitizer
	}
	if componentCtx.Cache == nil {
		componentCtx.Cache = s.defaultCache
	}

	output := transformed
	for idx, pc := range parsed {
		start := time.Now()
		rendered, err := s.renderer.Render(componentCtx, pc.Name, pc.Params, pc.Inner)
		elapsed := time.Since(start)

		entryFields := map[string]any{
			"component":   pc.Name,
			"index":       idx,
			"duration_ms": elapsed.Milliseconds(),
		}
		if err != nil {
			entryFields["error"] = err
			logging.WithFields(logger, entryFields).Error("component.service.render_failed")
			return "", err
		}
		logging.WithFields(logger, entryFields).Debug("component.service.render_succeeded")

		placeholder := fmt.Sprintf(interfaces.ComponentPlaceholderFormat, idx)
		output = strings.ReplaceAll(output, placeholder, string(rendered))
	}

	logging.WithFields(logger, map[string]any{
		"components": len(parsed),
	}).Debug("component.service.process_completed")
	return output, nil
}

// Render executes a single component definition and returns the HTML output.
func (s *Service) Render(ctx interfaces.ComponentContext, component string, params map[string]any, inner string) (template.HTML, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("component: service not initialised")
	}
	if ctx.Context == nil {
		ctx.Context = context.Background()
	}
	if ctx.Sanitizer == nil {
		ctx.Sanitizer = s.defaultSanitizer
	}
	if ctx.Cache == nil {
		ctx.Cache = s.defaultCache
	}

	logger := logging.WithFields(s.baseLogger(ctx.Context), map[string]any{
		"operation": "component.render",
		"component": component,
	})

	start := time.Now()
	result, err := s.renderer.Render(ctx, component, params, inner)
	elapsed := time.Since(start)

	fields := map[string]any{
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		logging.WithFields(logger, fields).Error("component.service.render_failed")
		return "", err
	}
	logging.WithFields(logger, fields).Debug("component.service.render_succeeded")

	return result, nil
}

// Registry exposes the underlying component registry.
func (s *Service) Registry() interfaces.ComponentRegistry {
	return s.registry
}

// Ensure Service complies with interfaces.ComponentService.
var _ interfaces.ComponentService = (*Service)(nil)

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
