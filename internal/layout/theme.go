package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ManifestLoader loads a theme manifest from a theme directory.
type ManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsManifestLoader struct{}

func (fsManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" || cleaned == "." {
		return nil, fmt.Errorf("layout: theme path required")
	}

	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// ThemeOptions configures manifest discovery and selection defaults.
type ThemeOptions struct {
	BasePath          string
	DefaultTheme      string
	DefaultVariant    string
	CSSVariablePrefix string
	PartialFallbacks  map[string]string
	Loader            ManifestLoader
}

// ThemeSelector registers theme manifests on demand and resolves selections.
type ThemeSelector struct {
	registry         *gotheme.MemoryRegistry
	loader           ManifestLoader
	basePath         string
	defaultTheme     string
	defaultVariant   string
	cssPrefix        string
	partialFallbacks map[string]string

	mu        sync.Mutex
	manifests map[string]*gotheme.Manifest
}

func NewThemeSelector(opts ThemeOptions) *ThemeSelector {
	loader := opts.Loader
	if loader == nil {
		loader = fsManifestLoader{}
	}
	return &ThemeSelector{
		registry:         gotheme.NewRegistry(),
		loader:           loader,
		basePath:         strings.TrimSpace(opts.BasePath),
		defaultTheme:     strings.TrimSpace(opts.DefaultTheme),
		defaultVariant:   strings.TrimSpace(opts.DefaultVariant),
		cssPrefix:        strings.TrimSpace(opts.CSSVariablePrefix),
		partialFallbacks: opts.PartialFallbacks,
		manifests:        map[string]*gotheme.Manifest{},
	}
}

// Selection resolves a theme/variant pair, loading the manifest on first use.
// A blank name falls back to the configured default; no default means no theme.
func (s *ThemeSelector) Selection(name, variant string) (*gotheme.Selection, error) {
	resolvedName := strings.TrimSpace(name)
	if resolvedName == "" {
		resolvedName = s.defaultTheme
	}
	if resolvedName == "" {
		return nil, nil
	}

	if _, err := s.ensureManifest(resolvedName); err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.defaultTheme,
		DefaultVariant: s.defaultVariant,
	}

	resolvedVariant := strings.TrimSpace(variant)
	if resolvedVariant == "" {
		resolvedVariant = s.defaultVariant
	}

	selection, err := selector.Select(resolvedName, resolvedVariant)
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", resolvedName, err)
	}
	return selection, nil
}

func (s *ThemeSelector) ensureManifest(name string) (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(name)
	if manifest, ok := s.manifests[key]; ok {
		return manifest, nil
	}

	themePath := name
	if s.basePath != "" {
		themePath = filepath.Join(s.basePath, name)
	}

	manifest, err := s.loader.Load(themePath)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", themePath, err)
	}

	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" || !strings.EqualFold(normalized.Name, name) {
		normalized.Name = name
	}

	if err := s.registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifests[key] = &normalized
	return &normalized, nil
}

// ThemeContext surfaces go-theme selection data to page templates.
type ThemeContext struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// Context converts a selection into the template-facing theme context.
// A nil selection yields an inert context so templates never nil-check.
func (s *ThemeSelector) Context(selection *gotheme.Selection) ThemeContext {
	empty := ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}
	if selection == nil {
		return empty
	}

	return ThemeContext{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(s.cssPrefix),
		Partials:  selection.Partials(s.partialFallbacks),
		AssetURL:  func(key string) string { url, _ := selection.Asset(key); return url },
		Template:  selection.Template,
		Selection: selection,
	}
}
