package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryArticleRepository is an in-memory implementation used by the preview
// server and tests.
type MemoryArticleRepository struct {
	mu        sync.RWMutex
	articles  map[uuid.UUID]*Article
	slugIndex map[string]uuid.UUID
}

// NewMemoryArticleRepository creates an empty in-memory article repository.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{
		articles:  make(map[uuid.UUID]*Article),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// GetBySlug retrieves an article by slug, returning NotFoundError when absent.
func (m *MemoryArticleRepository) GetBySlug(_ context.Context, slug string) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}
	return cloneArticle(m.articles[id]), nil
}

// List returns every stored article.
func (m *MemoryArticleRepository) List(_ context.Context) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Article, 0, len(m.articles))
	for _, rec := range m.articles {
		out = append(out, cloneArticle(rec))
	}
	return out, nil
}

// ListPublished returns stored articles with the published flag set.
func (m *MemoryArticleRepository) ListPublished(_ context.Context) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Article, 0, len(m.articles))
	for _, rec := range m.articles {
		if rec.Published {
			out = append(out, cloneArticle(rec))
		}
	}
	return out, nil
}

// Replace swaps the full article set atomically.
func (m *MemoryArticleRepository) Replace(_ context.Context, articles []*Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.articles = make(map[uuid.UUID]*Article, len(articles))
	m.slugIndex = make(map[string]uuid.UUID, len(articles))
	for _, rec := range articles {
		copied := cloneArticle(rec)
		m.articles[copied.ID] = copied
		m.slugIndex[copied.Slug] = copied.ID
	}
	return nil
}

var _ ArticleRepository = (*MemoryArticleRepository)(nil)
