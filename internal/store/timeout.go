package store

import (
	"context"
	"time"

	"fintrack/internal/models"
)

// WithTimeout bounds every call on s by d. A non-positive d returns s.
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

func (s *timeoutStore) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}

func (s *timeoutStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.ListTransactions(ctx, filter)
}

func (s *timeoutStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.GetTransaction(ctx, id)
}

func (s *timeoutStore) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.InsertTransaction(ctx, t)
}

func (s *timeoutStore) ReplaceTransaction(ctx context.Context, t *models.Transaction) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.ReplaceTransaction(ctx, t)
}

func (s *timeoutStore) RemoveTransaction(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.RemoveTransaction(ctx, id)
}

func (s *timeoutStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.ListCategories(ctx)
}

func (s *timeoutStore) SeedCategories(ctx context.Context, cats []models.Category) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.SeedCategories(ctx, cats)
}

func (s *timeoutStore) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.ListBudgets(ctx, month)
}

func (s *timeoutStore) FindBudget(ctx context.Context, categoryID, month string) (*models.Budget, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.FindBudget(ctx, categoryID, month)
}

func (s *timeoutStore) InsertBudget(ctx context.Context, b *models.Budget) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.InsertBudget(ctx, b)
}

func (s *timeoutStore) UpdateBudget(ctx context.Context, b *models.Budget) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.UpdateBudget(ctx, b)
}

func (s *timeoutStore) RemoveBudget(ctx context.Context, categoryID, month string) (bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.next.RemoveBudget(ctx, categoryID, month)
}

func (s *timeoutStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
