package blog

import (
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/layout"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Document exports the parsed article shape for consumers of the blog package.
type Document = interfaces.Document

// Metadata exports the front-matter contract.
type Metadata = interfaces.Metadata

// DocumentStore exports the content store contract.
type DocumentStore = interfaces.DocumentStore

// ComponentService exports the component orchestration contract.
type ComponentService = interfaces.ComponentService

// ComponentDefinition exports the registry entry shape.
type ComponentDefinition = interfaces.ComponentDefinition

// RenderService exports the full document rendering pipeline.
type RenderService = *render.Service

// Composer exports the layout composition service.
type Composer = *layout.Composer

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build report.
type BuildResult = generator.BuildResult

// Server exports the HTTP surface.
type Server = *server.Server

// Option exports the DI override hooks accepted by New.
type Option = di.Option

// Module is the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Store returns the configured document store.
func (m *Module) Store() DocumentStore {
	return m.container.Store()
}

// Renderer returns the document rendering pipeline.
func (m *Module) Renderer() RenderService {
	return m.container.Renderer()
}

// Components returns the component orchestration service.
func (m *Module) Components() ComponentService {
	return m.container.Components()
}

// Composer returns the layout composer.
func (m *Module) Composer() Composer {
	return m.container.Composer()
}

// Server returns the HTTP surface, nil when the server is disabled.
func (m *Module) Server() Server {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Server()
}

// Generator returns the configured generator service.
func (m *Module) Generator() GeneratorService {
	return m.container.Generator()
}
