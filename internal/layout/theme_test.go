package layout

import (
	"fmt"
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

type stubManifestLoader struct {
	manifests map[string]*gotheme.Manifest
	loads     int
}

func (l *stubManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	l.loads++
	manifest, ok := l.manifests[themePath]
	if !ok {
		return nil, fmt.Errorf("no manifest at %s", themePath)
	}
	clone := *manifest
	return &clone, nil
}

func TestThemeSelectorSelection(t *testing.T) {
	loader := &stubManifestLoader{
		manifests: map[string]*gotheme.Manifest{
			"themes/aurora": {Name: "aurora", Version: "1.0.0"},
		},
	}
	selector := NewThemeSelector(ThemeOptions{
		BasePath:     "themes",
		DefaultTheme: "aurora",
		Loader:       loader,
	})

	selection, err := selector.Selection("", "")
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if selection == nil || selection.Theme != "aurora" {
		t.Fatalf("unexpected selection %+v", selection)
	}

	// Manifest loads once; later selections reuse the registry.
	if _, err := selector.Selection("aurora", ""); err != nil {
		t.Fatalf("second selection: %v", err)
	}
	if loader.loads != 1 {
		t.Fatalf("expected a single manifest load, got %d", loader.loads)
	}
}

func TestThemeSelectorNoDefault(t *testing.T) {
	selector := NewThemeSelector(ThemeOptions{Loader: &stubManifestLoader{}})

	selection, err := selector.Selection("", "")
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if selection != nil {
		t.Fatalf("expected no selection without a theme, got %+v", selection)
	}
}

func TestThemeSelectorMissingManifest(t *testing.T) {
	selector := NewThemeSelector(ThemeOptions{
		BasePath: "themes",
		Loader:   &stubManifestLoader{},
	})

	if _, err := selector.Selection("ghost", ""); err == nil {
		t.Fatal("expected missing manifest to fail")
	}
}

func TestThemeContextNilSelection(t *testing.T) {
	selector := NewThemeSelector(ThemeOptions{Loader: &stubManifestLoader{}})

	themeCtx := selector.Context(nil)
	if themeCtx.Name != "" {
		t.Fatalf("expected empty context, got %+v", themeCtx)
	}
	if themeCtx.AssetURL("styles.main") != "" {
		t.Fatal("expected inert asset lookup")
	}
	if got := themeCtx.Template("page", "fallback.tmpl"); got != "fallback.tmpl" {
		t.Fatalf("expected template fallback, got %q", got)
	}
}
