package di

import (
	"errors"
	"fmt"
	"testing"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestNewContainerConsoleLogging(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "warn"

	container, err := NewContainer(cfg, WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected a logger provider")
	}
	if _, ok := container.LoggerProvider().(noopProvider); ok {
		t.Fatal("expected a real provider when logging is enabled")
	}
}

func TestNewContainerGologgerRejectsBadFormat(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "yaml"

	if _, err := NewContainer(cfg, WithContentFS(testContentFS())); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

type capturedProvider struct {
	names []string
}

func (p *capturedProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return logging.NoOp()
}

func TestNewContainerLoggerProviderOverride(t *testing.T) {
	provider := &capturedProvider{}

	container, err := NewContainer(testConfig(),
		WithContentFS(testContentFS()),
		WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.LoggerProvider() != interfaces.LoggerProvider(provider) {
		t.Fatal("expected injected provider to win")
	}
	if len(provider.names) == 0 {
		t.Fatal("expected module loggers to be requested during wiring")
	}
}

type staticManifestLoader struct {
	manifest *gotheme.Manifest
}

func (l staticManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	if l.manifest == nil {
		return nil, fmt.Errorf("theme manifest not found at %s", themePath)
	}
	return l.manifest, nil
}

func TestNewContainerThemeWiring(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Themes = true
	cfg.Themes.DefaultTheme = "aurora"

	container, err := NewContainer(cfg,
		WithContentFS(testContentFS()),
		WithThemeManifestLoader(staticManifestLoader{
			manifest: &gotheme.Manifest{Name: "aurora", Version: "1.0.0"},
		}))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.ThemeContext().Name != "aurora" {
		t.Fatalf("expected resolved theme, got %q", container.ThemeContext().Name)
	}
}

func TestNewContainerThemeFailureAborts(t *testing.T) {
	cfg := testConfig()
	cfg.Features.Themes = true
	cfg.Themes.DefaultTheme = "missing"

	if _, err := NewContainer(cfg,
		WithContentFS(testContentFS()),
		WithThemeManifestLoader(staticManifestLoader{})); err == nil {
		t.Fatal("expected missing manifest to fail construction")
	}
}
