package analytics

import (
	"sort"

	"fintrack/internal/models"
)

// RecentLimit is the number of transactions listed on the dashboard.
const RecentLimit = 5

// Dashboard summarizes one month for the overview screen.
type Dashboard struct {
	Month            string               `json:"month"`
	Income           float64              `json:"income"`
	Expenses         float64              `json:"expenses"`
	Net              float64              `json:"net"`
	TransactionCount int                  `json:"transaction_count"`
	TopCategory      *CategoryAggregate   `json:"top_category"`
	Recent           []models.Transaction `json:"recent_transactions"`
}

// Rounded returns a copy with monetary fields rounded to cents.
func (d Dashboard) Rounded() Dashboard {
	out := d
	out.Income = Round2(d.Income)
	out.Expenses = Round2(d.Expenses)
	out.Net = Round2(d.Net)
	if d.TopCategory != nil {
		top := *d.TopCategory
		top.Total = Round2(top.Total)
		out.TopCategory = &top
	}
	return out
}

// Summarize builds the dashboard for month. Recent lists the newest
// transactions across all months by date.
func Summarize(month string, txs []models.Transaction, idx *models.CategoryIndex) Dashboard {
	monthTxs := InMonth(txs, month)
	d := Dashboard{Month: month, TransactionCount: len(monthTxs)}

	for _, t := range monthTxs {
		switch t.Type {
		case models.TransactionTypeIncome:
			d.Income += t.Amount
		case models.TransactionTypeExpense:
			d.Expenses += t.Amount
		}
	}
	d.Net = d.Income - d.Expenses

	if spending := ByCategory(monthTxs, idx); len(spending.Categories) > 0 {
		top := spending.Categories[0]
		d.TopCategory = &top
	}

	d.Recent = MostRecent(txs, RecentLimit)
	return d
}

// MostRecent returns up to n transactions ordered by date, newest first.
// Ties on date fall back to creation time.
func MostRecent(txs []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	SortByDateDesc(sorted)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SortByDateDesc orders txs newest first in place.
func SortByDateDesc(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
