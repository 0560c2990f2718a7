package interfaces

import (
	"context"
	"time"
)

// Document represents a Markdown article with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract. Documents are
// immutable after authoring; the store never mutates them at runtime.
type Document struct {
	Slug         string
	SourcePath   string
	Metadata     Metadata
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so reload workflows can detect changes without re-parsing unchanged files.
	Checksum []byte
}

// Metadata models the front-matter extracted from article files. Required
// fields are Title and Date; Published defaults to false when omitted so
// drafts never leak into listings by accident.
type Metadata struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Description string         `yaml:"description" json:"description"`
	Date        time.Time      `yaml:"date" json:"date"`
	Published   bool           `yaml:"published" json:"published"`
	Authors     []string       `yaml:"authors" json:"authors"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// DocumentStore resolves slugs to documents and lists the published archive.
// Reads are idempotent and safe for concurrent use; Reload is a build-time
// operation that re-scans the content source.
type DocumentStore interface {
	// Get returns the document for the supplied slug, published or not.
	// A store.NotFoundError is returned when the slug has no match.
	Get(ctx context.Context, slug string) (*Document, error)

	// List returns the published documents sorted by date descending.
	// The sequence is recomputed on every call.
	List(ctx context.Context) ([]*Document, error)

	// Reload re-scans the content directory. Duplicate slugs and malformed
	// metadata abort the reload with an error.
	Reload(ctx context.Context) error
}
