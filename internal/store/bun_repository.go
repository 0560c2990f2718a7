package store

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunArticleRepository implements ArticleRepository with optional caching.
type BunArticleRepository struct {
	db   *bun.DB
	repo repository.Repository[*Article]
}

// NewBunArticleRepository creates an article repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache creates an article repository with caching support.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunArticleRepository{db: db, repo: base}
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	return record, nil
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*Article, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunArticleRepository) ListPublished(ctx context.Context) ([]*Article, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.published = TRUE")
	}))
	return records, err
}

// Replace swaps the stored article set inside a transaction so readers never
// observe a partially reloaded index.
func (r *BunArticleRepository) Replace(ctx context.Context, articles []*Article) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*Article)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("article repository clear: %w", err)
		}
		for _, article := range articles {
			if _, err := tx.NewInsert().Model(article).Exec(ctx); err != nil {
				return fmt.Errorf("article repository insert %s: %w", article.Slug, err)
			}
		}
		return nil
	})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

var _ ArticleRepository = (*BunArticleRepository)(nil)
