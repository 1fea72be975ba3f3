package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/analytics"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

// analyticsService loads the inputs of each view concurrently and hands them
// to the pure functions of package analytics.
type analyticsService struct {
	store      store.Store
	categories CategoryServicer
	now        func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(s store.Store, categories CategoryServicer) AnalyticsServicer {
	return &analyticsService{store: s, categories: categories, now: time.Now}
}

// snapshot is the data one view is computed from.
type snapshot struct {
	txs     []models.Transaction
	budgets []models.Budget
	index   *models.CategoryIndex
}

// load fetches transactions matching filter, and budgets of budgetMonth when
// withBudgets is set, alongside the category index.
func (s *analyticsService) load(ctx context.Context, filter store.TransactionFilter, budgetMonth string, withBudgets bool) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := s.store.ListTransactions(gctx, filter)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		snap.txs = txs
		return nil
	})
	if withBudgets {
		g.Go(func() error {
			budgets, err := s.store.ListBudgets(gctx, budgetMonth)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			snap.budgets = budgets
			return nil
		})
	}
	g.Go(func() error {
		idx, err := s.categories.Index(gctx)
		if err != nil {
			return err
		}
		snap.index = idx
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// resolveMonth validates month, defaulting to the current month.
func (s *analyticsService) resolveMonth(month string) (string, error) {
	if month == "" {
		return analytics.CurrentMonth(s.now()), nil
	}
	if !analytics.ValidMonth(month) {
		return "", apperrors.FieldError("month", "must be a month in YYYY-MM format")
	}
	return month, nil
}

// Monthly returns one aggregate per month, oldest first.
func (s *analyticsService) Monthly(ctx context.Context) ([]analytics.MonthlyAggregate, error) {
	txs, err := s.store.ListTransactions(ctx, store.TransactionFilter{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return analytics.Monthly(txs), nil
}

// Categories returns the expense breakdown of month, or of all time.
func (s *analyticsService) Categories(ctx context.Context, month string) (*analytics.CategoryBreakdown, error) {
	if month != "" && !analytics.ValidMonth(month) {
		return nil, apperrors.FieldError("month", "must be a month in YYYY-MM format")
	}
	snap, err := s.load(ctx, store.TransactionFilter{Month: month, Type: models.TransactionTypeExpense}, "", false)
	if err != nil {
		return nil, err
	}
	breakdown := analytics.ByCategory(snap.txs, snap.index)
	return &breakdown, nil
}

// BudgetComparison returns budget-vs-actual rows for month.
func (s *analyticsService) BudgetComparison(ctx context.Context, month string) (*analytics.BudgetComparison, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, store.TransactionFilter{Month: month}, month, true)
	if err != nil {
		return nil, err
	}
	comparison := analytics.CompareBudgets(month, snap.txs, snap.budgets, snap.index)
	return &comparison, nil
}

// Insights returns the observations for month along with the month they cover.
func (s *analyticsService) Insights(ctx context.Context, month string) (*MonthInsights, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, insightWindow(month), month, true)
	if err != nil {
		return nil, err
	}
	return &MonthInsights{
		Month:    month,
		Insights: analytics.Insights(month, snap.txs, snap.budgets, snap.index),
	}, nil
}

// Dashboard returns the overview of month.
func (s *analyticsService) Dashboard(ctx context.Context, month string) (*analytics.Dashboard, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, store.TransactionFilter{}, "", false)
	if err != nil {
		return nil, err
	}
	dashboard := analytics.Summarize(month, snap.txs, snap.index)
	return &dashboard, nil
}

// Report computes every view of month from a single fetch.
func (s *analyticsService) Report(ctx context.Context, month string) (*Report, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	snap, err := s.load(ctx, insightWindow(month), month, true)
	if err != nil {
		return nil, err
	}

	monthTxs := analytics.InMonth(snap.txs, month)
	summary := analytics.MonthlyAggregate{Month: month}
	if rollup := analytics.Monthly(monthTxs); len(rollup) == 1 {
		summary = rollup[0]
	}

	return &Report{
		Month:      month,
		Summary:    summary,
		Categories: analytics.ByCategory(monthTxs, snap.index),
		Budget:     analytics.CompareBudgets(month, monthTxs, snap.budgets, snap.index),
		Insights:   analytics.Insights(month, snap.txs, snap.budgets, snap.index),
	}, nil
}

// insightWindow selects month and the month before it.
func insightWindow(month string) store.TransactionFilter {
	from := month
	if prev, ok := analytics.PreviousMonth(month); ok {
		from = prev
	}
	return store.TransactionFilter{From: from + "-01", To: month + "-31"}
}
