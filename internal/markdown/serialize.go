package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// SerializeMetadata renders metadata back to YAML front-matter form. The Raw
// mapping captured at parse time drives the output so custom keys survive a
// parse, serialize, parse round trip.
func SerializeMetadata(meta interfaces.Metadata) ([]byte, error) {
	raw := meta.Raw
	if raw == nil {
		raw = rawFromMetadata(meta)
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("serialize metadata: %w", err)
	}
	return out, nil
}

// ComposeDocument reassembles a complete Markdown source from metadata and
// body, delimited the same way ParseMetadata expects.
func ComposeDocument(meta interfaces.Metadata, body []byte) ([]byte, error) {
	front, err := SerializeMetadata(meta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n\n")
	buf.Write(bytes.TrimLeft(body, "\n"))
	return buf.Bytes(), nil
}

// rawFromMetadata rebuilds the front-matter mapping for metadata constructed
// in code rather than parsed from a file.
func rawFromMetadata(meta interfaces.Metadata) map[string]any {
	raw := make(map[string]any, len(meta.Custom)+7)
	for key, value := range meta.Custom {
		raw[key] = value
	}
	if meta.Title != "" {
		raw["title"] = meta.Title
	}
	if meta.Slug != "" {
		raw["slug"] = meta.Slug
	}
	if meta.Description != "" {
		raw["description"] = meta.Description
	}
	if !meta.Date.IsZero() {
		raw["date"] = meta.Date
	}
	if len(meta.Authors) > 0 {
		raw["authors"] = append([]string(nil), meta.Authors...)
	}
	if len(meta.Tags) > 0 {
		raw["tags"] = append([]string(nil), meta.Tags...)
	}
	raw["published"] = meta.Published
	return raw
}
