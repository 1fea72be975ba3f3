// Package gormstore implements store.Store on top of GORM, for PostgreSQL
// and SQLite.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

// Models lists the tables managed by this store, for AutoMigrate.
var Models = []interface{}{
	&models.Category{},
	&models.Transaction{},
	&models.Budget{},
}

// Store is a GORM-backed store.Store.
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM connection. The schema must already exist.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// ListTransactions returns filtered transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := applyFilter(s.db.WithContext(ctx), filter).
		Order("date DESC").
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func applyFilter(q *gorm.DB, f store.TransactionFilter) *gorm.DB {
	if f.Month != "" {
		q = q.Where("date LIKE ?", f.Month+"-%")
	}
	if f.From != "" {
		q = q.Where("date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("date <= ?", f.To)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		q = q.Where(`LOWER(description) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(f.Search))+"%")
	}
	return q
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// GetTransaction fetches one transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// InsertTransaction creates t. The BeforeCreate hook assigns id and timestamps.
func (s *Store) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ReplaceTransaction overwrites the stored fields of t.ID.
func (s *Store) ReplaceTransaction(ctx context.Context, t *models.Transaction) error {
	result := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"amount":      t.Amount,
			"date":        t.Date,
			"description": t.Description,
			"category_id": t.CategoryID,
			"type":        t.Type,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("replace transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	stored, err := s.GetTransaction(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

// RemoveTransaction deletes id and reports whether a row was removed.
func (s *Store) RemoveTransaction(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return false, fmt.Errorf("remove transaction: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListCategories returns the catalog by position.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// SeedCategories inserts cats, leaving existing ids untouched.
func (s *Store) SeedCategories(ctx context.Context, cats []models.Category) error {
	if len(cats) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&cats).Error
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

// ListBudgets returns the budgets of month, or all of them.
func (s *Store) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	q := s.db.WithContext(ctx)
	if month != "" {
		q = q.Where("month = ?", month)
	}
	var budgets []models.Budget
	if err := q.Order("month ASC").Order("category_id ASC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// FindBudget returns the budget keyed by (categoryID, month).
func (s *Store) FindBudget(ctx context.Context, categoryID, month string) (*models.Budget, error) {
	var b models.Budget
	err := s.db.WithContext(ctx).
		Where("category_id = ? AND month = ?", categoryID, month).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return &b, nil
}

// InsertBudget creates b.
func (s *Store) InsertBudget(ctx context.Context, b *models.Budget) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// UpdateBudget overwrites the amount of the budget b.ID.
func (s *Store) UpdateBudget(ctx context.Context, b *models.Budget) error {
	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Model(&models.Budget{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{"amount": b.Amount, "updated_at": now})
	if result.Error != nil {
		return fmt.Errorf("update budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	b.UpdatedAt = now
	return nil
}

// RemoveBudget deletes the budget keyed by (categoryID, month).
func (s *Store) RemoveBudget(ctx context.Context, categoryID, month string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("category_id = ? AND month = ?", categoryID, month).
		Delete(&models.Budget{})
	if result.Error != nil {
		return false, fmt.Errorf("remove budget: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Close releases the connection pool.
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
