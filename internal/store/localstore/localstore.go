// Package localstore implements store.Store as three JSON documents in a
// local directory, one per record kind. The whole data set is held in memory
// and every mutation rewrites the affected document.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

const (
	transactionsFile = "transactions.json"
	categoriesFile   = "categories.json"
	budgetsFile      = "budgets.json"
)

// Store is a file-backed store.Store.
type Store struct {
	mu           sync.Mutex
	dir          string
	transactions []models.Transaction
	categories   []models.Category
	budgets      []models.Budget
	now          func() time.Time
}

// Open loads the documents in dir, creating dir when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	s := &Store{dir: dir, now: func() time.Time { return time.Now().UTC() }}
	if err := readJSON(filepath.Join(dir, transactionsFile), &s.transactions); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, categoriesFile), &s.categories); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, budgetsFile), &s.budgets); err != nil {
		return nil, err
	}
	return s, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON replaces path atomically through a temp file in the same directory.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) saveTransactions() error {
	return writeJSON(filepath.Join(s.dir, transactionsFile), s.transactions)
}

func (s *Store) saveCategories() error {
	return writeJSON(filepath.Join(s.dir, categoriesFile), s.categories)
}

func (s *Store) saveBudgets() error {
	return writeJSON(filepath.Join(s.dir, budgetsFile), s.budgets)
}

func (s *Store) transactionIndex(id string) int {
	for i, t := range s.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) budgetIndex(categoryID, month string) int {
	for i, b := range s.budgets {
		if b.CategoryID == categoryID && b.Month == month {
			return i
		}
	}
	return -1
}

// ListTransactions returns filtered transactions, newest first.
func (s *Store) ListTransactions(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	analytics.SortByDateDesc(out)
	return out, nil
}

// GetTransaction fetches one transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	t := s.transactions[i]
	return &t, nil
}

// InsertTransaction stamps t and appends it.
func (s *Store) InsertTransaction(ctx context.Context, t *models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Stamp(s.now())
	s.transactions = append(s.transactions, *t)
	if err := s.saveTransactions(); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-1]
		return err
	}
	return nil
}

// ReplaceTransaction overwrites the mutable fields of t.ID.
func (s *Store) ReplaceTransaction(ctx context.Context, t *models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(t.ID)
	if i < 0 {
		return store.ErrNotFound
	}
	prev := s.transactions[i]
	next := prev
	next.Amount = t.Amount
	next.Date = t.Date
	next.Description = t.Description
	next.CategoryID = t.CategoryID
	next.Type = t.Type
	next.UpdatedAt = s.now()

	s.transactions[i] = next
	if err := s.saveTransactions(); err != nil {
		s.transactions[i] = prev
		return err
	}
	*t = next
	return nil
}

// RemoveTransaction deletes id and reports whether it existed.
func (s *Store) RemoveTransaction(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.transactionIndex(id)
	if i < 0 {
		return false, nil
	}
	prev := s.transactions
	s.transactions = append(append(make([]models.Transaction, 0, len(prev)-1), prev[:i]...), prev[i+1:]...)
	if err := s.saveTransactions(); err != nil {
		s.transactions = prev
		return false, err
	}
	return true, nil
}

// ListCategories returns the catalog in the order it was seeded.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(make([]models.Category, 0, len(s.categories)), s.categories...), nil
}

// SeedCategories appends the categories whose id is not stored yet.
func (s *Store) SeedCategories(ctx context.Context, cats []models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		known[c.ID] = true
	}
	prev := s.categories
	changed := false
	for _, c := range cats {
		if known[c.ID] {
			continue
		}
		known[c.ID] = true
		s.categories = append(s.categories, c)
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.saveCategories(); err != nil {
		s.categories = prev
		return err
	}
	return nil
}

// ListBudgets returns the budgets of month, or all of them.
func (s *Store) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		if month == "" || b.Month == month {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

// FindBudget returns the budget keyed by (categoryID, month).
func (s *Store) FindBudget(ctx context.Context, categoryID, month string) (*models.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.budgetIndex(categoryID, month)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	b := s.budgets[i]
	return &b, nil
}

// InsertBudget stamps b and appends it. The (category, month) key must be free.
func (s *Store) InsertBudget(ctx context.Context, b *models.Budget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.budgetIndex(b.CategoryID, b.Month) >= 0 {
		return fmt.Errorf("budget for %s in %s already exists", b.CategoryID, b.Month)
	}
	b.Stamp(s.now())
	s.budgets = append(s.budgets, *b)
	if err := s.saveBudgets(); err != nil {
		s.budgets = s.budgets[:len(s.budgets)-1]
		return err
	}
	return nil
}

// UpdateBudget overwrites the amount of budget b.ID.
func (s *Store) UpdateBudget(ctx context.Context, b *models.Budget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID != b.ID {
			continue
		}
		prev := s.budgets[i]
		s.budgets[i].Amount = b.Amount
		s.budgets[i].UpdatedAt = s.now()
		if err := s.saveBudgets(); err != nil {
			s.budgets[i] = prev
			return err
		}
		*b = s.budgets[i]
		return nil
	}
	return store.ErrNotFound
}

// RemoveBudget deletes the budget keyed by (categoryID, month).
func (s *Store) RemoveBudget(ctx context.Context, categoryID, month string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.budgetIndex(categoryID, month)
	if i < 0 {
		return false, nil
	}
	prev := s.budgets
	s.budgets = append(append(make([]models.Budget, 0, len(prev)-1), prev[:i]...), prev[i+1:]...)
	if err := s.saveBudgets(); err != nil {
		s.budgets = prev
		return false, err
	}
	return true, nil
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close(_ context.Context) error {
	return nil
}
