// Package store defines the persistence contract shared by every backend.
// Implementations live in the gormstore, mongostore and localstore
// subpackages.
package store

import (
	"context"
	"errors"
	"strings"

	"fintrack/internal/models"
)

// ErrNotFound is returned when a record addressed by id or key does not exist.
var ErrNotFound = errors.New("record not found")

// TransactionFilter narrows ListTransactions. Zero-value fields do not filter.
type TransactionFilter struct {
	// Month restricts to dates within a YYYY-MM key.
	Month string
	// From and To bound the date inclusively, as YYYY-MM-DD.
	From string
	To   string
	Type models.TransactionType
	// CategoryID matches the stored category id exactly.
	CategoryID string
	// Search is a case-insensitive substring of the description.
	Search string
}

// Match reports whether t passes every set field of f. Backends that filter
// in memory use it directly; query-building backends must agree with it.
func (f TransactionFilter) Match(t models.Transaction) bool {
	if f.Month != "" && !strings.HasPrefix(t.Date, f.Month+"-") {
		return false
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// TransactionStore persists transactions.
type TransactionStore interface {
	// ListTransactions returns matching transactions ordered by date, newest
	// first, then by creation time, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	// InsertTransaction assigns the id and timestamps of t.
	InsertTransaction(ctx context.Context, t *models.Transaction) error
	// ReplaceTransaction overwrites every mutable field of the stored record
	// with t's and refreshes t from the stored result.
	ReplaceTransaction(ctx context.Context, t *models.Transaction) error
	RemoveTransaction(ctx context.Context, id string) (bool, error)
}

// CategoryStore persists the category catalog.
type CategoryStore interface {
	// ListCategories returns the catalog in display order.
	ListCategories(ctx context.Context) ([]models.Category, error)
	// SeedCategories inserts the categories whose id is not yet stored.
	SeedCategories(ctx context.Context, cats []models.Category) error
}

// BudgetStore persists monthly budgets keyed by (category, month).
type BudgetStore interface {
	// ListBudgets returns the budgets of month, or all budgets when month is
	// empty.
	ListBudgets(ctx context.Context, month string) ([]models.Budget, error)
	FindBudget(ctx context.Context, categoryID, month string) (*models.Budget, error)
	InsertBudget(ctx context.Context, b *models.Budget) error
	UpdateBudget(ctx context.Context, b *models.Budget) error
	RemoveBudget(ctx context.Context, categoryID, month string) (bool, error)
}

// Store is the full persistence adapter.
type Store interface {
	TransactionStore
	CategoryStore
	BudgetStore
	Close(ctx context.Context) error
}
