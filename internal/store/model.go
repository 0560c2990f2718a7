package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Article is the persisted shape of a blog document. Identifiers are derived
// deterministically from the slug so repeated reloads upsert rather than fork.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID           uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug         string         `bun:"slug,notnull,unique" json:"slug"`
	Title        string         `bun:"title,notnull" json:"title"`
	Description  string         `bun:"description" json:"description,omitempty"`
	Date         time.Time      `bun:"date,notnull" json:"date"`
	Published    bool           `bun:"published,notnull,default:false" json:"published"`
	Authors      []string       `bun:"authors,type:jsonb" json:"authors,omitempty"`
	Tags         []string       `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Custom       map[string]any `bun:"custom,type:jsonb" json:"custom,omitempty"`
	SourcePath   string         `bun:"source_path,notnull" json:"source_path"`
	Body         []byte         `bun:"body" json:"-"`
	Checksum     []byte         `bun:"checksum" json:"-"`
	LastModified time.Time      `bun:"last_modified,nullzero" json:"last_modified"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ArticleFromDocument maps a loaded document onto the storage model.
func ArticleFromDocument(doc *interfaces.Document) *Article {
	if doc == nil {
		return nil
	}
	return &Article{
		ID:           identity.DocumentUUID(doc.Slug),
		Slug:         doc.Slug,
		Title:        doc.Metadata.Title,
		Description:  doc.Metadata.Description,
		Date:         doc.Metadata.Date,
		Published:    doc.Metadata.Published,
		Authors:      append([]string(nil), doc.Metadata.Authors...),
		Tags:         append([]string(nil), doc.Metadata.Tags...),
		Custom:       cloneMap(doc.Metadata.Custom),
		SourcePath:   doc.SourcePath,
		Body:         append([]byte(nil), doc.Body...),
		Checksum:     append([]byte(nil), doc.Checksum...),
		LastModified: doc.LastModified,
	}
}

// ToDocument maps the storage model back onto the document contract.
func (a *Article) ToDocument() *interfaces.Document {
	if a == nil {
		return nil
	}
	return &interfaces.Document{
		Slug:       a.Slug,
		SourcePath: a.SourcePath,
		Metadata: interfaces.Metadata{
			Title:       a.Title,
			Slug:        a.Slug,
			Description: a.Description,
			Date:        a.Date,
			Published:   a.Published,
			Authors:     append([]string(nil), a.Authors...),
			Tags:        append([]string(nil), a.Tags...),
			Custom:      cloneMap(a.Custom),
		},
		Body:         append([]byte(nil), a.Body...),
		LastModified: a.LastModified,
		Checksum:     append([]byte(nil), a.Checksum...),
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

func cloneArticle(src *Article) *Article {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Authors = append([]string(nil), src.Authors...)
	copied.Tags = append([]string(nil), src.Tags...)
	copied.Custom = cloneMap(src.Custom)
	copied.Body = append([]byte(nil), src.Body...)
	copied.Checksum = append([]byte(nil), src.Checksum...)
	return &copied
}
