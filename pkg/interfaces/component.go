package interfaces

import (
	"context"
	"html/template"
	"time"
)

// ComponentPlaceholderFormat is the marker emitted in place of each extracted
// component. The HTML comment form survives Markdown conversion so rendered
// output can be substituted back afterwards.
const ComponentPlaceholderFormat = "<!-- component:%d -->"

// ComponentRegistry describes the lifecycle contract for registering and
// resolving embedded component definitions. Implementations must be safe for
// concurrent use. The registry is closed: once frozen, registration fails and
// the catalogue is fixed for the lifetime of the process.
type ComponentRegistry interface {
	// Register stores a definition and returns an error when a component
	// with the same name already exists, the definition fails validation,
	// or the registry has been frozen.
	Register(definition ComponentDefinition) error

	// Get returns the definition for the supplied component name.
	Get(name string) (ComponentDefinition, bool)

	// List exposes the current catalogue in name order.
	List() []ComponentDefinition

	// Freeze seals the registry. Subsequent Register calls fail.
	Freeze()
}

// ComponentRenderer executes a component definition and returns HTML output.
type ComponentRenderer interface {
	Render(ctx ComponentContext, component string, params map[string]any, inner string) (template.HTML, error)
}

// ComponentParser extracts component invocations from article bodies.
type ComponentParser interface {
	Parse(content string) ([]ParsedComponent, error)
	Extract(content string) (placeholders string, components []ParsedComponent, err error)
}

// ComponentSanitizer encapsulates sanitisation helpers applied after rendering.
type ComponentSanitizer interface {
	Sanitize(html string) (string, error)
	ValidateURL(raw string) error
	ValidateAttributes(attrs map[string]any) error
}

// ComponentService orchestrates extraction and rendering of the components
// embedded in a content string.
type ComponentService interface {
	Process(ctx context.Context, content string, opts ComponentProcessOptions) (string, error)
	Render(ctx ComponentContext, component string, params map[string]any, inner string) (template.HTML, error)
	Registry() ComponentRegistry
}

// ComponentProcessOptions carries per-call overrides for Process.
type ComponentProcessOptions struct {
	Cache     CacheProvider
	Sanitizer ComponentSanitizer
}

// ComponentDefinition captures the metadata, validation schema, and template
// references that the registry stores.
type ComponentDefinition struct {
	Name        string
	Version     string
	Description string
	Category    string
	Icon        string
	AllowInner  bool
	CacheTTL    time.Duration
	Schema      ComponentSchema
	Template    string
	Handler     ComponentHandler
}

// ComponentSchema defines the contract for parameters accepted by a component.
type ComponentSchema struct {
	Params   []ComponentParam
	Defaults map[string]any
}

// ComponentParam describes a single parameter, including optional custom validation.
type ComponentParam struct {
	Name     string
	Type     ComponentParamType
	Required bool
	Default  any
	Validate ComponentValidator
}

// ComponentParamType enumerates the supported parameter coercions.
type ComponentParamType string

const (
	ComponentParamString ComponentParamType = "string"
	ComponentParamInt    ComponentParamType = "int"
	ComponentParamBool   ComponentParamType = "bool"
	ComponentParamArray  ComponentParamType = "array"
	ComponentParamURL    ComponentParamType = "url"
)

// ComponentValidator allows definitions to perform custom validation.
type ComponentValidator func(value any) error

// ComponentHandler executes the component with resolved parameters.
type ComponentHandler func(ctx ComponentContext, params map[string]any, inner string) (template.HTML, error)

// ComponentContext provides runtime metadata surfaced during rendering.
type ComponentContext struct {
	Context   context.Context
	Cache     CacheProvider
	Sanitizer ComponentSanitizer
}

// ParsedComponent represents a parsed invocation discovered by the parser layer.
type ParsedComponent struct {
	Name   string
	Params map[string]any
	Inner  string
}
