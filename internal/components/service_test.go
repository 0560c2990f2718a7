package components

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()

	registry := NewRegistry(NewValidator())
	for _, def := range BuiltInDefinitions() {
		if err := registry.Register(def); err != nil {
			t.Fatalf("register builtin %s: %v", def.Name, err)
		}
	}
	registry.Freeze()

	renderer := NewRenderer(registry, NewValidator())
	return NewService(registry, renderer, opts...)
}

func TestServiceProcessRendersCallout(t *testing.T) {
	svc := newTestService(t)

	content := `Before.

<Callout type="warning" title="Careful">
Mind the gap.
</Callout>

After.`

	out, err := svc.Process(context.Background(), content, interfaces.ComponentProcessOptions{})
	if err != nil {
		t.Fatalf("expected process to succeed, got %v", err)
	}
	if !strings.Contains(out, `component--callout-warning`) {
		t.Fatalf("expected warning callout markup, got %q", out)
	}
	if !strings.Contains(out, "Careful") || !strings.Contains(out, "Mind the gap.") {
		t.Fatalf("expected title and inner content, got %q", out)
	}
	if strings.Contains(out, "<!-- component:") {
		t.Fatalf("expected placeholders to be substituted, got %q", out)
	}
}

func TestServiceProcessDefaultsCalloutType(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Process(context.Background(), `<Callout>plain</Callout>`, interfaces.ComponentProcessOptions{})
	if err != nil {
		t.Fatalf("expected process to succeed, got %v", err)
	}
	if !strings.Contains(out, "component--callout-info") {
		t.Fatalf("expected info default, got %q", out)
	}
}

func TestServiceProcessUnknownComponent(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Process(context.Background(), `<Spotlight id="x" />`, interfaces.ComponentProcessOptions{})
	if !errors.Is(err, ErrUnresolvedComponent) {
		t.Fatalf("expected ErrUnresolvedComponent, got %v", err)
	}

	var unresolved *UnresolvedComponentError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedComponentError, got %T", err)
	}
	if unresolved.Name != "Spotlight" {
		t.Fatalf("expected offending name, got %q", unresolved.Name)
	}
}

func TestServiceProcessMissingRequiredParam(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Process(context.Background(), `<YouTube />`, interfaces.ComponentProcessOptions{})
	if !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("expected ErrMissingParameter, got %v", err)
	}
}

func TestServiceProcessYouTubeQueryParams(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "autoplay only",
			content: `<YouTube id="abc" autoplay="true" />`,
			want:    "https://www.youtube.com/embed/abc?autoplay=1",
		},
		{
			name:    "start only",
			content: `<YouTube id="abc" start="30" />`,
			want:    "https://www.youtube.com/embed/abc?start=30",
		},
		{
			name:    "start and autoplay",
			content: `<YouTube id="abc" start="30" autoplay="true" />`,
			want:    "https://www.youtube.com/embed/abc?start=30&amp;autoplay=1",
		},
		{
			name:    "no query",
			content: `<YouTube id="abc" />`,
			want:    `https://www.youtube.com/embed/abc" title=`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := svc.Process(context.Background(), tc.content, interfaces.ComponentProcessOptions{})
			if err != nil {
				t.Fatalf("expected process to succeed, got %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in output, got %q", tc.want, out)
			}
		})
	}
}

func TestServiceProcessInvalidCalloutType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Process(context.Background(), `<Callout type="loud">hi</Callout>`, interfaces.ComponentProcessOptions{})
	if err == nil {
		t.Fatal("expected validation error for unsupported callout type")
	}
}

func TestServiceProcessLeavesPlainMarkdownUntouched(t *testing.T) {
	svc := newTestService(t)

	content := "Just **markdown** with <em>html</em>."
	out, err := svc.Process(context.Background(), content, interfaces.ComponentProcessOptions{})
	if err != nil {
		t.Fatalf("expected process to succeed, got %v", err)
	}
	if out != content {
		t.Fatalf("expected content unchanged, got %q", out)
	}
}

type memoryCache struct {
	mu     sync.Mutex
	values map[string]any
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]any{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.values[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = map[string]any{}
	return nil
}

func TestServiceProcessCachesRenderedOutput(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestService(t, WithDefaultCache(cache))

	content := `<YouTube id="abc123" />`
	first, err := svc.Process(context.Background(), content, interfaces.ComponentProcessOptions{})
	if err != nil {
		t.Fatalf("expected first render to succeed, got %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cached entry after first render, got %d sets", cache.sets)
	}

	second, err := svc.Process(context.Background(), content, interfaces.ComponentProcessOptions{})
	if err != nil {
		t.Fatalf("expected cached render to succeed, got %v", err)
	}
	if first != second {
		t.Fatalf("expected identical output, got %q vs %q", first, second)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache hit on second render, got %d sets", cache.sets)
	}
}

func TestServiceRenderSanitizesScript(t *testing.T) {
	registry := NewRegistry(NewValidator())
	err := registry.Register(interfaces.ComponentDefinition{
		Name:     "raw",
		Template: `<script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	registry.Freeze()

	svc := NewService(registry, NewRenderer(registry, NewValidator()))

	_, err = svc.Render(interfaces.ComponentContext{}, "raw", nil, "")
	if err == nil {
		t.Fatal("expected sanitizer to reject script output")
	}
}
