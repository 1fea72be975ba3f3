package services

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/testutil"
)

// countingCategoryStore records how often the catalog is read.
type countingCategoryStore struct {
	cats  []models.Category
	err   error
	calls int
}

func (s *countingCategoryStore) ListCategories(_ context.Context) ([]models.Category, error) {
	s.calls++
	return s.cats, s.err
}

func (s *countingCategoryStore) SeedCategories(_ context.Context, _ []models.Category) error {
	return nil
}

var _ store.CategoryStore = (*countingCategoryStore)(nil)

func TestListCategories(t *testing.T) {
	t.Run("seeded_catalog", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(testutil.SetupTestStore(t, db))

		cats, err := svc.ListCategories(context.Background())
		testutil.AssertNoError(t, err)

		if len(cats) != 8 {
			t.Fatalf("expected 8 categories, got %d", len(cats))
		}
		if cats[0].ID != "food" {
			t.Errorf("expected food first, got %s", cats[0].ID)
		}
	})

	t.Run("empty_store_falls_back_to_defaults", func(t *testing.T) {
		svc := NewCategoryService(&countingCategoryStore{})

		cats, err := svc.ListCategories(context.Background())
		testutil.AssertNoError(t, err)

		if len(cats) != len(models.DefaultCategories()) {
			t.Errorf("expected default catalog, got %d categories", len(cats))
		}
	})

	t.Run("store_failure", func(t *testing.T) {
		svc := NewCategoryService(&countingCategoryStore{err: errors.New("connection refused")})

		_, err := svc.ListCategories(context.Background())
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestCategoryIndex_Cached(t *testing.T) {
	st := &countingCategoryStore{cats: models.DefaultCategories()}
	svc := NewCategoryService(st)

	for i := 0; i < 3; i++ {
		idx, err := svc.Index(context.Background())
		testutil.AssertNoError(t, err)
		if !idx.Has("bills") {
			t.Fatal("expected bills in index")
		}
	}
	if st.calls != 1 {
		t.Errorf("expected one store read, got %d", st.calls)
	}
}

func TestCategoryIndex_RetriesAfterFailure(t *testing.T) {
	st := &countingCategoryStore{err: errors.New("timeout")}
	svc := NewCategoryService(st)

	if _, err := svc.Index(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	st.err = nil
	st.cats = models.DefaultCategories()
	if _, err := svc.Index(context.Background()); err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if st.calls != 2 {
		t.Errorf("expected two store reads, got %d", st.calls)
	}
}
