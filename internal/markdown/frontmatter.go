package markdown

import (
	"bytes"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseMetadata extracts metadata and Markdown body content from the provided
// source bytes. It returns the structured metadata, the Markdown body without
// delimiters, and any error encountered. Decoding and validation failures are
// reported as MetadataError so callers can match ErrMalformedMetadata.
func ParseMetadata(path string, source []byte) (interfaces.Metadata, []byte, error) {
	var meta metadataEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.Metadata{}, nil, &MetadataError{Path: path, Err: err}
	}

	resolved := envelopeToMetadata(meta)
	if err := validateMetadata(resolved); err != nil {
		return interfaces.Metadata{}, nil, &MetadataError{Path: path, Reason: err.Error()}
	}

	return resolved, body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	metadata, body, err := ParseMetadata(path, source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		SourcePath:   path,
		Metadata:     metadata,
		Body:         body,
		LastModified: modified,
	}, nil
}

type metadataEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	Date        time.Time      `yaml:"date"`
	// Published is a pointer so a missing key defaults to unpublished rather
	// than relying on the zero value looking intentional.
	Published *bool          `yaml:"published"`
	Author    string         `yaml:"author"`
	Authors   []string       `yaml:"authors"`
	Tags      []string       `yaml:"tags"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToMetadata(env metadataEnvelope) interfaces.Metadata {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	authors := append([]string(nil), env.Authors...)
	if env.Author != "" {
		authors = append([]string{env.Author}, authors...)
	}

	published := false
	if env.Published != nil {
		published = *env.Published
	}

	raw := make(map[string]any, len(env.Custom)+7)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if len(authors) > 0 {
		raw["authors"] = append([]string(nil), authors...)
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	raw["published"] = published

	return interfaces.Metadata{
		Title:       env.Title,
		Slug:        env.Slug,
		Description: env.Description,
		Date:        env.Date,
		Published:   published,
		Authors:     authors,
		Tags:        append([]string(nil), env.Tags...),
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func validateMetadata(meta interfaces.Metadata) error {
	errs := validation.Errors{}
	if err := validation.Validate(meta.Title, validation.Required); err != nil {
		errs["title"] = err
	}
	if meta.Date.IsZero() {
		errs["date"] = validation.NewError("validation_required", "cannot be blank")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
