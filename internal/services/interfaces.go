package services

import (
	"context"

	"fintrack/internal/analytics"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/store"
)

// CategoryServicer defines the contract for reading the category catalog.
type CategoryServicer interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	Index(ctx context.Context) (*models.CategoryIndex, error)
}

// TransactionInput carries the writable fields of a transaction. An empty
// Type means expense on create and "keep the stored type" on update.
type TransactionInput struct {
	Amount      float64
	Date        string
	Description string
	CategoryID  string
	Type        models.TransactionType
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(ctx context.Context, filter store.TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, in TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// BudgetOutcome reports what SetBudget did.
type BudgetOutcome string

const (
	BudgetCreated BudgetOutcome = "created"
	BudgetUpdated BudgetOutcome = "updated"
	BudgetRemoved BudgetOutcome = "removed"
)

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	ListBudgets(ctx context.Context, month string) ([]models.Budget, error)
	// SetBudget upserts the (category, month) budget. An amount of 0 removes it
	// and returns a nil budget.
	SetBudget(ctx context.Context, categoryID, month string, amount float64) (*models.Budget, BudgetOutcome, error)
	DeleteBudget(ctx context.Context, categoryID, month string) error
}

// Report bundles every analytics view of one month.
type Report struct {
	Month      string                      `json:"month"`
	Summary    analytics.MonthlyAggregate  `json:"summary"`
	Categories analytics.CategoryBreakdown `json:"categories"`
	Budget     analytics.BudgetComparison  `json:"budget"`
	Insights   []string                    `json:"insights"`
}

// MonthInsights holds the insight sentences of a resolved month.
type MonthInsights struct {
	Month    string   `json:"month"`
	Insights []string `json:"insights"`
}

// AnalyticsServicer defines the contract for derived views. An empty month
// means the current month, except for Categories where it means all time.
type AnalyticsServicer interface {
	Monthly(ctx context.Context) ([]analytics.MonthlyAggregate, error)
	Categories(ctx context.Context, month string) (*analytics.CategoryBreakdown, error)
	BudgetComparison(ctx context.Context, month string) (*analytics.BudgetComparison, error)
	Insights(ctx context.Context, month string) (*MonthInsights, error)
	Dashboard(ctx context.Context, month string) (*analytics.Dashboard, error)
	Report(ctx context.Context, month string) (*Report, error)
}
