package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/components"
	"github.com/goliatone/go-blog/internal/components/parser"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	registry := components.NewRegistry(components.NewValidator())
	for _, def := range components.BuiltInDefinitions() {
		if err := registry.Register(def); err != nil {
			t.Fatalf("register builtin %s: %v", def.Name, err)
		}
	}
	registry.Freeze()

	renderer := components.NewRenderer(registry, components.NewValidator())
	svc := components.NewService(registry, renderer)

	return NewService(parser.NewMDXParser(), svc, markdown.NewGoldmarkParser(interfaces.ParseOptions{}))
}

func TestRenderBodyMarkdownOnly(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.RenderBody(context.Background(), "plain.md", []byte("# Title\n\nSome **bold** text.\n"))
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("unexpected markdown output %q", out)
	}
}

func TestRenderBodySubstitutesComponents(t *testing.T) {
	svc := newTestService(t)

	body := []byte(`# Post

<Callout type="warning" title="Heads up">
Mind the gap.
</Callout>

Closing paragraph.
`)

	out, err := svc.RenderBody(context.Background(), "post.md", body)
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "component--callout-warning") {
		t.Fatalf("expected rendered callout, got %q", out)
	}
	if strings.Contains(out, "<!-- component:") {
		t.Fatalf("expected placeholders to be substituted, got %q", out)
	}
	if !strings.Contains(out, "Closing paragraph.") {
		t.Fatalf("expected surrounding markdown to render, got %q", out)
	}
}

func TestRenderBodyKeepsComponentTagsInCodeFences(t *testing.T) {
	svc := newTestService(t)

	body := []byte("Use the callout like this:\n\n```md\n<Callout type=\"warning\">Careful.</Callout>\n```\n")

	out, err := svc.RenderBody(context.Background(), "guide.md", body)
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "&lt;Callout type=&quot;warning&quot;&gt;") {
		t.Fatalf("expected escaped tag inside code block, got %q", out)
	}
	if strings.Contains(out, "component--callout") {
		t.Fatalf("expected fenced tag not to render, got %q", out)
	}
	if strings.Contains(out, "component:0") {
		t.Fatalf("expected no placeholder residue, got %q", out)
	}
}

func TestRenderBodyAllowsUnknownTagsInCodeFences(t *testing.T) {
	svc := newTestService(t)

	body := []byte("Hypothetical widget:\n\n```\n<MyWidget size=\"3\" />\n```\n")

	out, err := svc.RenderBody(context.Background(), "guide.md", body)
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "&lt;MyWidget size=&quot;3&quot; /&gt;") {
		t.Fatalf("expected escaped tag inside code block, got %q", out)
	}
}

func TestRenderBodyAllowsUnknownTagsInCodeSpans(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.RenderBody(context.Background(), "guide.md", []byte("Mention `<MyWidget />` inline.\n"))
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "<code>&lt;MyWidget /&gt;</code>") {
		t.Fatalf("expected escaped tag inside code span, got %q", out)
	}
}

func TestRenderBodyUnresolvedComponent(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RenderBody(context.Background(), "post.md", []byte(`<Spotlight id="x" />`))
	if !errors.Is(err, components.ErrUnresolvedComponent) {
		t.Fatalf("expected ErrUnresolvedComponent, got %v", err)
	}
}

func TestRenderBodyMalformedComponentTag(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RenderBody(context.Background(), "post.md", []byte(`<Callout type="info">never closed`))
	if !errors.Is(err, markdown.ErrMalformedSyntax) {
		t.Fatalf("expected ErrMalformedSyntax, got %v", err)
	}

	var synErr *markdown.SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %T", err)
	}
	if synErr.Path != "post.md" {
		t.Fatalf("expected path on syntax error, got %q", synErr.Path)
	}
}

func TestRenderDocument(t *testing.T) {
	svc := newTestService(t)

	doc := &interfaces.Document{
		Slug:       "hello",
		SourcePath: "hello.md",
		Body:       []byte("Hello **world**.\n"),
	}

	out, err := svc.RenderDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("expected render to succeed, got %v", err)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Fatalf("unexpected output %q", out)
	}
}
