package analytics

import "fintrack/internal/models"

// BudgetStatus classifies how much of a budget has been used.
type BudgetStatus string

const (
	BudgetStatusGood    BudgetStatus = "good"
	BudgetStatusWarning BudgetStatus = "warning"
	BudgetStatusOver    BudgetStatus = "over"
)

// Status thresholds on the rounded percentage of budget used.
const (
	WarningThreshold = 80
	OverThreshold    = 100
)

// StatusFor maps a rounded percent-used value to a status: above 100 is
// over, above 80 is a warning, anything else is good.
func StatusFor(percentUsed int) BudgetStatus {
	switch {
	case percentUsed > OverThreshold:
		return BudgetStatusOver
	case percentUsed > WarningThreshold:
		return BudgetStatusWarning
	default:
		return BudgetStatusGood
	}
}

// BudgetRow compares one category's budget with its spending in a month.
type BudgetRow struct {
	CategoryID   string       `json:"category_id"`
	Name         string       `json:"name"`
	Color        string       `json:"color"`
	Icon         string       `json:"icon"`
	BudgetAmount float64      `json:"budget"`
	Spent        float64      `json:"spent"`
	Remaining    float64      `json:"remaining"`
	PercentUsed  int          `json:"percentage"`
	Status       BudgetStatus `json:"status"`
}

// BudgetSummary totals the rows of a comparison.
type BudgetSummary struct {
	TotalBudget       float64 `json:"total_budget"`
	TotalSpent        float64 `json:"total_spent"`
	TotalRemaining    float64 `json:"total_remaining"`
	OverallPercentage int     `json:"overall_percentage"`
}

// BudgetComparison is the budget-vs-actual view of one month.
type BudgetComparison struct {
	Month   string        `json:"month"`
	Rows    []BudgetRow   `json:"budget_comparison"`
	Summary BudgetSummary `json:"summary"`
}

// Rounded returns a copy with monetary fields rounded to cents.
func (c BudgetComparison) Rounded() BudgetComparison {
	out := BudgetComparison{
		Month: c.Month,
		Rows:  make([]BudgetRow, len(c.Rows)),
		Summary: BudgetSummary{
			TotalBudget:       Round2(c.Summary.TotalBudget),
			TotalSpent:        Round2(c.Summary.TotalSpent),
			TotalRemaining:    Round2(c.Summary.TotalRemaining),
			OverallPercentage: c.Summary.OverallPercentage,
		},
	}
	for i, r := range c.Rows {
		r.BudgetAmount = Round2(r.BudgetAmount)
		r.Spent = Round2(r.Spent)
		r.Remaining = Round2(r.Remaining)
		out.Rows[i] = r
	}
	return out
}

// OverBudget returns the rows whose status is over.
func (c BudgetComparison) OverBudget() []BudgetRow {
	var out []BudgetRow
	for _, r := range c.Rows {
		if r.Status == BudgetStatusOver {
			out = append(out, r)
		}
	}
	return out
}

// CompareBudgets builds the budget comparison for month. txs may span any
// period; only expenses dated within month count as spending. Budgets for
// other months or for categories outside idx are ignored. A category gets a
// row when it has a budget or spending in the month, in catalog order.
func CompareBudgets(month string, txs []models.Transaction, budgets []models.Budget, idx *models.CategoryIndex) BudgetComparison {
	spending := ByCategory(Expenses(InMonth(txs, month)), idx)

	budgetByCategory := make(map[string]float64)
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		budgetByCategory[b.CategoryID] = b.Amount
	}

	rows := make([]BudgetRow, 0)
	var summary BudgetSummary
	for _, cat := range idx.All() {
		budget := budgetByCategory[cat.ID]
		spent := spending.Total(cat.ID)
		if budget <= 0 && spent <= 0 {
			continue
		}

		percent := Percent(spent, budget)
		rows = append(rows, BudgetRow{
			CategoryID:   cat.ID,
			Name:         cat.Name,
			Color:        cat.Color,
			Icon:         cat.Icon,
			BudgetAmount: budget,
			Spent:        spent,
			Remaining:    budget - spent,
			PercentUsed:  percent,
			Status:       StatusFor(percent),
		})
		summary.TotalBudget += budget
		summary.TotalSpent += spent
	}

	summary.TotalRemaining = summary.TotalBudget - summary.TotalSpent
	summary.OverallPercentage = Percent(summary.TotalSpent, summary.TotalBudget)

	return BudgetComparison{Month: month, Rows: rows, Summary: summary}
}
