package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ArticleRepository abstracts the persistence layer so the document service can
// run against the in-memory index or the bun-backed store interchangeably.
type ArticleRepository interface {
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context) ([]*Article, error)
	ListPublished(ctx context.Context) ([]*Article, error)
	Replace(ctx context.Context, articles []*Article) error
}

// NewArticleRepository creates the go-repository-bun repository for articles.
func NewArticleRepository(db *bun.DB) repository.Repository[*Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Article]{
		NewRecord:          func() *Article { return &Article{} },
		GetID:              func(article *Article) uuid.UUID { return article.ID },
		SetID:              func(article *Article, id uuid.UUID) { article.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(article *Article) string { return article.Slug },
	})
}
