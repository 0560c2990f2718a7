package parser

import (
	"strings"
	"testing"
)

func TestExtractPairedComponent(t *testing.T) {
	p := NewMDXParser()

	content := `Intro text.

<Callout type="warning" title="Heads up">
Careful now.
</Callout>

Outro text.`

	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 component, got %d", len(parsed))
	}

	pc := parsed[0]
	if pc.Name != "Callout" {
		t.Fatalf("expected component name Callout, got %q", pc.Name)
	}
	if pc.Params["type"] != "warning" || pc.Params["title"] != "Heads up" {
		t.Fatalf("unexpected params %v", pc.Params)
	}
	if pc.Inner != "Careful now." {
		t.Fatalf("unexpected inner %q", pc.Inner)
	}
	if !strings.Contains(transformed, "<!-- component:0 -->") {
		t.Fatalf("expected placeholder in transformed content, got %q", transformed)
	}
	if strings.Contains(transformed, "<Callout") {
		t.Fatalf("expected tag to be removed, got %q", transformed)
	}
}

func TestExtractSelfClosingComponent(t *testing.T) {
	p := NewMDXParser()

	transformed, parsed, err := p.Extract(`<YouTube id="dQw4w9WgXcQ" start="42" />`)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 component, got %d", len(parsed))
	}
	if parsed[0].Name != "YouTube" {
		t.Fatalf("unexpected name %q", parsed[0].Name)
	}
	if parsed[0].Params["id"] != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected params %v", parsed[0].Params)
	}
	if parsed[0].Inner != "" {
		t.Fatalf("expected no inner content, got %q", parsed[0].Inner)
	}
	if transformed != "<!-- component:0 -->" {
		t.Fatalf("unexpected transformed content %q", transformed)
	}
}

func TestExtractBareAttributeBecomesFlag(t *testing.T) {
	p := NewMDXParser()

	_, parsed, err := p.Extract(`<Figure src="https://example.com/a.png" zoomable />`)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if parsed[0].Params["zoomable"] != true {
		t.Fatalf("expected bare attribute to coerce to true, got %v", parsed[0].Params["zoomable"])
	}
}

func TestExtractLeavesPlainHTMLAlone(t *testing.T) {
	p := NewMDXParser()

	content := `Some <em>emphasis</em> and a <a href="https://example.com">link</a>.`
	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected no components, got %d", len(parsed))
	}
	if transformed != content {
		t.Fatalf("expected content unchanged, got %q", transformed)
	}
}

func TestExtractNestedComponents(t *testing.T) {
	p := NewMDXParser()

	content := `<Callout type="info">outer <Code lang="go">x := 1</Code> text</Callout>`
	_, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 components, got %d", len(parsed))
	}
	// Inner components are extracted first; the outer body carries their placeholder.
	if parsed[0].Name != "Code" {
		t.Fatalf("expected inner component first, got %q", parsed[0].Name)
	}
	if !strings.Contains(parsed[1].Inner, "<!-- component:0 -->") {
		t.Fatalf("expected outer inner to reference inner placeholder, got %q", parsed[1].Inner)
	}
}

func TestExtractLeavesFencedCodeAlone(t *testing.T) {
	p := NewMDXParser()

	content := "Use it like this:\n\n```md\n<Callout type=\"warning\">Careful.</Callout>\n```\n\nDone.\n"
	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected fenced tags to be ignored, got %d components", len(parsed))
	}
	if transformed != content {
		t.Fatalf("expected content unchanged, got %q", transformed)
	}
}

func TestExtractLeavesUnknownTagsInFencesAlone(t *testing.T) {
	p := NewMDXParser()

	content := "Example:\n\n~~~\n<MyWidget size=\"3\">\n</MyWidget>\n~~~\n"
	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected no components, got %d", len(parsed))
	}
	if transformed != content {
		t.Fatalf("expected content unchanged, got %q", transformed)
	}
}

func TestExtractLeavesInlineCodeSpansAlone(t *testing.T) {
	p := NewMDXParser()

	content := "Embed videos with `<YouTube id=\"x\" />` inline."
	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 0 {
		t.Fatalf("expected inline code tags to be ignored, got %d components", len(parsed))
	}
	if transformed != content {
		t.Fatalf("expected content unchanged, got %q", transformed)
	}
}

func TestExtractMixesProseTagsWithFencedExamples(t *testing.T) {
	p := NewMDXParser()

	content := "<Callout type=\"info\">live</Callout>\n\n```\n<Callout type=\"info\">sample</Callout>\n```\n"
	transformed, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected only the prose tag to parse, got %d components", len(parsed))
	}
	if parsed[0].Inner != "live" {
		t.Fatalf("unexpected inner %q", parsed[0].Inner)
	}
	if !strings.Contains(transformed, "<!-- component:0 -->") {
		t.Fatalf("expected placeholder for prose tag, got %q", transformed)
	}
	if !strings.Contains(transformed, "<Callout type=\"info\">sample</Callout>") {
		t.Fatalf("expected fenced sample to survive, got %q", transformed)
	}
}

func TestExtractComponentWrappingFencedBlock(t *testing.T) {
	p := NewMDXParser()

	content := "<Callout type=\"info\">\n```go\nx := 1\n```\n</Callout>"
	_, parsed, err := p.Extract(content)
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 component, got %d", len(parsed))
	}
	if !strings.Contains(parsed[0].Inner, "x := 1") {
		t.Fatalf("expected fenced code inside inner, got %q", parsed[0].Inner)
	}
}

func TestExtractUnmatchedBacktickStaysProse(t *testing.T) {
	p := NewMDXParser()

	_, parsed, err := p.Extract("A stray ` backtick before <Figure src=\"https://example.com/a.png\" />.")
	if err != nil {
		t.Fatalf("expected extract to succeed, got %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected tag after stray backtick to parse, got %d components", len(parsed))
	}
}

func TestExtractMismatchedEndTag(t *testing.T) {
	p := NewMDXParser()

	if _, _, err := p.Extract(`<Callout type="info">text</Figure>`); err == nil {
		t.Fatal("expected error for mismatched end tag")
	}
}

func TestExtractUnterminatedComponent(t *testing.T) {
	p := NewMDXParser()

	if _, _, err := p.Extract(`<Callout type="info">never closed`); err == nil {
		t.Fatal("expected error for unterminated component")
	}
}
