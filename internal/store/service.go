package store

import (
	"context"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const metadataValidationCode = "DOCUMENT_METADATA_INVALID"

// DocumentLoader abstracts the filesystem loading layer.
type DocumentLoader interface {
	LoadDirectory(ctx context.Context, dir string) ([]*markdown.DocumentResult, error)
}

// Service is the document store: it loads Markdown sources into a repository
// and serves lookups and listings. Listings only expose published documents,
// newest first; unpublished documents stay reachable through Get.
type Service struct {
	loader       DocumentLoader
	repo         ArticleRepository
	customSchema map[string]any
	logger       interfaces.Logger
}

// ServiceOption customises the store service.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCustomSchema installs a JSON schema applied to each document's custom
// front matter keys during Reload.
func WithCustomSchema(schema map[string]any) ServiceOption {
	return func(s *Service) {
		s.customSchema = schema
	}
}

// NewService constructs a document store backed by the supplied loader and repository.
func NewService(loader DocumentLoader, repo ArticleRepository, opts ...ServiceOption) *Service {
	service := &Service{
		loader: loader,
		repo:   repo,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Get returns the document stored under slug, published or not.
func (s *Service) Get(ctx context.Context, slug string) (*interfaces.Document, error) {
	normalized := strings.ToLower(strings.TrimSpace(slug))
	if normalized == "" {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}

	article, err := s.repo.GetBySlug(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return article.ToDocument(), nil
}

// List returns published documents ordered by date descending; documents
// sharing a date sort by slug so the ordering is stable across reloads.
func (s *Service) List(ctx context.Context) ([]*interfaces.Document, error) {
	articles, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(articles, func(i, j int) bool {
		if !articles[i].Date.Equal(articles[j].Date) {
			return articles[i].Date.After(articles[j].Date)
		}
		return articles[i].Slug < articles[j].Slug
	})

	docs := make([]*interfaces.Document, 0, len(articles))
	for _, article := range articles {
		docs = append(docs, article.ToDocument())
	}
	return docs, nil
}

// Reload re-reads the content directory and replaces the repository contents.
// Duplicate slugs and invalid metadata abort the reload so the previous index
// stays intact.
func (s *Service) Reload(ctx context.Context) error {
	logger := logging.WithFields(s.baseLogger(ctx), map[string]any{
		"operation": "store.reload",
	})

	results, err := s.loader.LoadDirectory(ctx, ".")
	if err != nil {
		logging.WithFields(logger, map[string]any{"error": err}).Error("store.reload_failed")
		return err
	}

	claimed := make(map[string][]string, len(results))
	for _, result := range results {
		doc := result.Document
		claimed[doc.Slug] = append(claimed[doc.Slug], doc.SourcePath)
	}
	for slug, paths := range claimed {
		if len(paths) > 1 {
			sort.Strings(paths)
			err := &DuplicateSlugError{Slug: slug, Paths: paths}
			logging.WithFields(logger, map[string]any{"error": err}).Error("store.reload_failed")
			return err
		}
	}

	articles := make([]*Article, 0, len(results))
	for _, result := range results {
		doc := result.Document
		if err := s.validateCustom(doc); err != nil {
			logging.WithFields(logger, map[string]any{
				"path":  doc.SourcePath,
				"error": err,
			}).Error("store.reload_failed")
			return err
		}
		articles = append(articles, ArticleFromDocument(doc))
	}

	if err := s.repo.Replace(ctx, articles); err != nil {
		logging.WithFields(logger, map[string]any{"error": err}).Error("store.reload_failed")
		return err
	}

	logging.WithFields(logger, map[string]any{
		"documents": len(articles),
	}).Info("store.reload_completed")
	return nil
}

func (s *Service) validateCustom(doc *interfaces.Document) error {
	if len(s.customSchema) == 0 {
		return nil
	}
	if err := validation.ValidatePayload(s.customSchema, doc.Metadata.Custom); err != nil {
		if !goerrors.IsWrapped(err) {
			err = goerrors.Wrap(err, goerrors.CategoryValidation, "custom metadata rejected").
				WithTextCode(metadataValidationCode)
		}
		return &markdown.MetadataError{Path: doc.SourcePath, Reason: err.Error(), Err: err}
	}
	return nil
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

// Ensure Service implements interfaces.DocumentStore.
var _ interfaces.DocumentStore = (*Service)(nil)
