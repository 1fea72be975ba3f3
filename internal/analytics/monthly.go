package analytics

import (
	"sort"
	"time"

	"fintrack/internal/models"
)

// MonthlyAggregate is the income/expense rollup of one calendar month.
type MonthlyAggregate struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// Rounded returns a copy with monetary fields rounded to cents.
func (m MonthlyAggregate) Rounded() MonthlyAggregate {
	return MonthlyAggregate{
		Month:    m.Month,
		Income:   Round2(m.Income),
		Expenses: Round2(m.Expenses),
		Net:      Round2(m.Net),
	}
}

// Monthly groups transactions by the year-month of their date and returns
// one aggregate per month, oldest first. Transactions whose date cannot be
// parsed are skipped.
func Monthly(txs []models.Transaction) []MonthlyAggregate {
	byMonth := make(map[string]*MonthlyAggregate)
	for _, t := range txs {
		month, ok := t.Month()
		if !ok {
			continue
		}
		agg, exists := byMonth[month]
		if !exists {
			agg = &MonthlyAggregate{Month: month}
			byMonth[month] = agg
		}
		switch t.Type {
		case models.TransactionTypeIncome:
			agg.Income += t.Amount
		case models.TransactionTypeExpense:
			agg.Expenses += t.Amount
		}
	}

	out := make([]MonthlyAggregate, 0, len(byMonth))
	for _, agg := range byMonth {
		agg.Net = agg.Income - agg.Expenses
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// InMonth returns the transactions dated within month (YYYY-MM).
func InMonth(txs []models.Transaction, month string) []models.Transaction {
	var out []models.Transaction
	for _, t := range txs {
		if m, ok := t.Month(); ok && m == month {
			out = append(out, t)
		}
	}
	return out
}

// Expenses returns only the expense transactions of txs.
func Expenses(txs []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, t := range txs {
		if t.IsExpense() {
			out = append(out, t)
		}
	}
	return out
}

// SumExpenses totals the amounts of the expense transactions in txs.
func SumExpenses(txs []models.Transaction) float64 {
	var total float64
	for _, t := range txs {
		if t.IsExpense() {
			total += t.Amount
		}
	}
	return total
}

// CurrentMonth returns the YYYY-MM key for now.
func CurrentMonth(now time.Time) string {
	return now.Format(models.MonthLayout)
}

// PreviousMonth returns the month key before month. ok is false when month
// is not a valid YYYY-MM key.
func PreviousMonth(month string) (prev string, ok bool) {
	t, err := time.Parse(models.MonthLayout, month)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, -1, 0).Format(models.MonthLayout), true
}

// ValidMonth reports whether month is a YYYY-MM key.
func ValidMonth(month string) bool {
	_, err := time.Parse(models.MonthLayout, month)
	return err == nil
}
