package services

import (
	"context"
	"errors"
	"math"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	store      store.BudgetStore
	categories CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(s store.BudgetStore, categories CategoryServicer) BudgetServicer {
	return &budgetService{store: s, categories: categories}
}

// ListBudgets returns the budgets of month, or every budget when month is empty.
func (s *budgetService) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	if month != "" && !analytics.ValidMonth(month) {
		return nil, apperrors.FieldError("month", "must be a month in YYYY-MM format")
	}
	budgets, err := s.store.ListBudgets(ctx, month)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// SetBudget creates, overwrites or removes the budget keyed by
// (categoryID, month). The read-then-write is not atomic across callers.
func (s *budgetService) SetBudget(ctx context.Context, categoryID, month string, amount float64) (*models.Budget, BudgetOutcome, error) {
	if err := s.validate(ctx, categoryID, month, amount); err != nil {
		return nil, "", err
	}

	if amount == 0 {
		if _, err := s.store.RemoveBudget(ctx, categoryID, month); err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil, BudgetRemoved, nil
	}

	existing, err := s.store.FindBudget(ctx, categoryID, month)
	switch {
	case err == nil:
		existing.Amount = amount
		if err := s.store.UpdateBudget(ctx, existing); err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return existing, BudgetUpdated, nil
	case errors.Is(err, store.ErrNotFound):
		budget := &models.Budget{CategoryID: categoryID, Month: month, Amount: amount}
		if err := s.store.InsertBudget(ctx, budget); err != nil {
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return budget, BudgetCreated, nil
	default:
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// DeleteBudget removes the budget keyed by (categoryID, month).
func (s *budgetService) DeleteBudget(ctx context.Context, categoryID, month string) error {
	removed, err := s.store.RemoveBudget(ctx, categoryID, month)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !removed {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

func (s *budgetService) validate(ctx context.Context, categoryID, month string, amount float64) error {
	idx, err := s.categories.Index(ctx)
	if err != nil {
		return err
	}

	details := make(map[string]string)
	if categoryID == "" {
		details["category"] = "is required"
	} else if !idx.Has(categoryID) {
		details["category"] = "must be a known category"
	}
	if month == "" {
		details["month"] = "is required"
	} else if !analytics.ValidMonth(month) {
		details["month"] = "must be a month in YYYY-MM format"
	}
	if amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		details["amount"] = "must be a number of at least 0"
	}

	if len(details) > 0 {
		return apperrors.Validation(details)
	}
	return nil
}
