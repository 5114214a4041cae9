package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"trivia-api/internal/cache"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"

	"go.uber.org/zap"
)

var categoryListCacheKey = cache.GenerateCacheKey("category", "list", "all")

// CategoryService defines the interface for category read operations
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

type categoryService struct {
	repo  domain.CategoryRepository
	cache domain.Cache
	ttl   time.Duration
}

// NewCategoryService creates a CategoryService. cache may be nil, in which
// case every call goes to the repository.
func NewCategoryService(repo domain.CategoryRepository, cache domain.Cache, ttl time.Duration) CategoryService {
	return &categoryService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListCategories returns all categories ordered by id. Categories are
// read-only through the API, so the list is cached for ttl. Cache failures
// are logged and never fail the request.
func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, categories)
	return categories, nil
}

func (s *categoryService) readCache(ctx context.Context) []*domain.Category {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, categoryListCacheKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("CategoryService: failed to read category cache", zap.Error(err))
		}
		return nil
	}

	var categories []*domain.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		logger.Get().Warn("CategoryService: discarding malformed cache entry", zap.Error(err))
		return nil
	}
	logger.Get().Debug("CategoryService: cache hit", zap.Int("categories", len(categories)))
	return categories
}

func (s *categoryService) writeCache(ctx context.Context, categories []*domain.Category) {
	if s.cache == nil || len(categories) == 0 {
		return
	}

	data, err := json.Marshal(categories)
	if err != nil {
		logger.Get().Warn("CategoryService: failed to encode categories for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, categoryListCacheKey, string(data), s.ttl); err != nil {
		logger.Get().Warn("CategoryService: failed to write category cache", zap.Error(err))
	}
}

// InvalidateCategoryCache drops the cached category list. It is used after
// categories are written outside the API, e.g. by the seed command.
func InvalidateCategoryCache(ctx context.Context, cache domain.Cache) error {
	if cache == nil {
		return nil
	}
	return cache.Delete(ctx, categoryListCacheKey)
}
