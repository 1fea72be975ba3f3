package services

import (
	"context"
	"sync"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// categoryService serves the catalog and caches its index after the first
// successful load. The catalog is read-only once seeded.
type categoryService struct {
	store store.CategoryStore

	mu    sync.Mutex
	index *models.CategoryIndex
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(s store.CategoryStore) CategoryServicer {
	return &categoryService{store: s}
}

// ListCategories returns the catalog in display order.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	idx, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.All(), nil
}

// Index returns the category index, loading it on first use.
func (s *categoryService) Index(ctx context.Context) (*models.CategoryIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(cats) == 0 {
		cats = models.DefaultCategories()
	}
	s.index = models.NewCategoryIndex(cats)
	return s.index, nil
}
